/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddbrepo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// idAttribute is the partition key of every table.
const idAttribute = "_id"

// expression is a condition or update expression with its placeholders.
type expression struct {
	text   string
	names  map[string]string
	values map[string]types.AttributeValue
}

// marshalPartial encodes a filter or patch. Unset fields must be omitted.
func marshalPartial(v any) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	for field, value := range av {
		if _, isNull := value.(*types.AttributeValueMemberNULL); isNull {
			return nil, fmt.Errorf("field %q of %T serialized as null; optional fields must be omitempty", field, v)
		}
	}
	return av, nil
}

// sortedFields returns the attribute names in a stable order so that built
// expressions are deterministic.
func sortedFields(av map[string]types.AttributeValue) []string {
	fields := make([]string, 0, len(av))
	for field := range av {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// buildUpdateExpression transforms marshaled patch fields into
// "SET #f0 = :v0, #f1 = :v1" with its placeholders.
func buildUpdateExpression(updates map[string]types.AttributeValue) (expression, error) {
	if len(updates) == 0 {
		return expression{}, fmt.Errorf("no updates provided")
	}

	expr := expression{
		names:  make(map[string]string, len(updates)),
		values: make(map[string]types.AttributeValue, len(updates)),
	}
	setClauses := make([]string, 0, len(updates))
	for i, field := range sortedFields(updates) {
		placeholderName := fmt.Sprintf("#f%d", i)
		placeholderValue := fmt.Sprintf(":v%d", i)

		setClauses = append(setClauses, fmt.Sprintf("%s = %s", placeholderName, placeholderValue))
		expr.names[placeholderName] = field
		expr.values[placeholderValue] = updates[field]
	}

	expr.text = "SET " + strings.Join(setClauses, ", ")
	return expr, nil
}

// buildFilterExpression transforms marshaled filter fields into an equality
// conjunction. An empty filter yields an empty expression.
func buildFilterExpression(filter map[string]types.AttributeValue) expression {
	if len(filter) == 0 {
		return expression{}
	}

	expr := expression{
		names:  make(map[string]string, len(filter)),
		values: make(map[string]types.AttributeValue, len(filter)),
	}
	conditions := make([]string, 0, len(filter))
	for i, field := range sortedFields(filter) {
		placeholderName := fmt.Sprintf("#c%d", i)
		placeholderValue := fmt.Sprintf(":c%d", i)

		conditions = append(conditions, fmt.Sprintf("%s = %s", placeholderName, placeholderValue))
		expr.names[placeholderName] = field
		expr.values[placeholderValue] = filter[field]
	}

	expr.text = strings.Join(conditions, " AND ")
	return expr
}

// idCondition builds "attribute_exists(#id)" or "attribute_not_exists(#id)".
func idCondition(exists bool) (string, map[string]string) {
	fn := "attribute_not_exists"
	if exists {
		fn = "attribute_exists"
	}
	return fn + "(#id)", map[string]string{"#id": idAttribute}
}

// mergeNames combines expression attribute name maps; nil when all are empty.
func mergeNames(maps ...map[string]string) map[string]string {
	var merged map[string]string
	for _, m := range maps {
		for k, v := range m {
			if merged == nil {
				merged = make(map[string]string)
			}
			merged[k] = v
		}
	}
	return merged
}

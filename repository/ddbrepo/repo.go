/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddbrepo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/docrepo/entity"
	"github.com/suparena/docrepo/errors"
	"github.com/suparena/docrepo/repository"
)

// Repo is the DynamoDB repository of kind E.
type Repo[E repository.Reposable, S any, P repository.Patch, F repository.Filter[F]] struct {
	client   API
	table    string
	settings settings
}

// NewRepo returns the repository of kind E over client.
func NewRepo[E repository.Reposable, S any, P repository.Patch, F repository.Filter[F]](client API, opts ...Option) *Repo[E, S, P, F] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &Repo[E, S, P, F]{
		client:   client,
		table:    TableName[E](),
		settings: s,
	}
}

func (r *Repo[E, S, P, F]) key(id entity.ID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		idAttribute: &types.AttributeValueMemberS{Value: id.String()},
	}
}

func (r *Repo[E, S, P, F]) fail(op string, err error) error {
	r.settings.logger.Debug().Err(err).Str("op", op).Str("table", r.table).Msg("store operation failed")
	return errors.NewStoreError(op, r.table, err)
}

// Create stores spec under a fresh client-assigned identifier.
func (r *Repo[E, S, P, F]) Create(ctx context.Context, spec S) (entity.ID, error) {
	item, err := attributevalue.MarshalMap(spec)
	if err != nil {
		return entity.ID{}, r.fail("put item", fmt.Errorf("failed to marshal %T: %w", spec, err))
	}
	if _, ok := item[idAttribute]; ok {
		return entity.ID{}, errors.NewValidationError(idAttribute, "a spec must not carry an identifier")
	}

	id := entity.NewID()
	item[idAttribute] = &types.AttributeValueMemberS{Value: id.String()}

	condition, names := idCondition(false)
	_, err = r.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     item,
		ConditionExpression:      aws.String(condition),
		ExpressionAttributeNames: names,
	})
	if err != nil {
		return entity.ID{}, r.fail("put item", err)
	}
	return id, nil
}

// Retrieve returns the entity with the given id, or nil when there is none.
func (r *Repo[E, S, P, F]) Retrieve(ctx context.Context, id entity.ID) (*E, error) {
	out, err := r.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            r.key(id),
		ConsistentRead: aws.Bool(r.settings.consistentRead),
	})
	if err != nil {
		return nil, r.fail("get item", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	result := new(E)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, r.fail("get item", errors.NewDecodeError(r.table, err))
	}
	return result, nil
}

// RetrieveAll returns every entity of the kind.
func (r *Repo[E, S, P, F]) RetrieveAll(ctx context.Context) ([]E, error) {
	var zero F
	return r.FindAll(ctx, zero)
}

// RetrievePage returns a window over every entity of the kind.
func (r *Repo[E, S, P, F]) RetrievePage(ctx context.Context, offset, limit int) ([]E, error) {
	var zero F
	return r.FindPage(ctx, zero, offset, limit)
}

// FindAll returns every entity matching filter, in scan order.
func (r *Repo[E, S, P, F]) FindAll(ctx context.Context, filter F) ([]E, error) {
	return r.scan(ctx, filter, 0, 0)
}

// FindPage skips offset matches and returns at most limit of the rest.
func (r *Repo[E, S, P, F]) FindPage(ctx context.Context, filter F, offset, limit int) ([]E, error) {
	nonEmpty, err := repository.CheckWindow(offset, limit)
	if err != nil {
		return nil, err
	}
	if !nonEmpty {
		return []E{}, nil
	}
	return r.scan(ctx, filter, offset, limit)
}

// scan streams the matching items page by page. limit 0 means no limit.
func (r *Repo[E, S, P, F]) scan(ctx context.Context, filter F, offset, limit int) ([]E, error) {
	av, err := marshalPartial(filter)
	if err != nil {
		return nil, r.fail("scan", err)
	}

	input := &sdk.ScanInput{
		TableName:      aws.String(r.table),
		Limit:          aws.Int32(r.settings.pageSize),
		ConsistentRead: aws.Bool(r.settings.consistentRead),
	}
	if expr := buildFilterExpression(av); expr.text != "" {
		input.FilterExpression = aws.String(expr.text)
		input.ExpressionAttributeNames = expr.names
		input.ExpressionAttributeValues = expr.values
	}

	results := make([]E, 0)
	skipped := 0
	paginator := sdk.NewScanPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, r.fail("scan", err)
		}

		for _, item := range page.Items {
			if skipped < offset {
				skipped++
				continue
			}

			var e E
			if err := attributevalue.UnmarshalMap(item, &e); err != nil {
				return nil, r.fail("scan", errors.NewDecodeError(r.table, err))
			}
			results = append(results, e)
			if limit > 0 && len(results) == limit {
				return results, nil
			}
		}
	}
	return results, nil
}

// Update sets the fields of patch on its target. It reports whether the target exists.
func (r *Repo[E, S, P, F]) Update(ctx context.Context, patch P) (bool, error) {
	set, err := marshalPartial(patch)
	if err != nil {
		return false, r.fail("update item", err)
	}
	if _, ok := set[idAttribute]; ok {
		return false, r.fail("update item", fmt.Errorf("patch %T must not serialize its target %s", patch, idAttribute))
	}
	if len(set) == 0 {
		return r.exists(ctx, patch.TargetID())
	}

	update, err := buildUpdateExpression(set)
	if err != nil {
		return false, r.fail("update item", err)
	}
	condition, idNames := idCondition(true)

	_, err = r.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       r.key(patch.TargetID()),
		UpdateExpression:          aws.String(update.text),
		ConditionExpression:       aws.String(condition),
		ExpressionAttributeNames:  mergeNames(update.names, idNames),
		ExpressionAttributeValues: update.values,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, r.fail("update item", err)
	}
	return true, nil
}

func (r *Repo[E, S, P, F]) exists(ctx context.Context, id entity.ID) (bool, error) {
	_, names := idCondition(true)
	out, err := r.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:                aws.String(r.table),
		Key:                      r.key(id),
		ProjectionExpression:     aws.String("#id"),
		ExpressionAttributeNames: names,
		ConsistentRead:           aws.Bool(r.settings.consistentRead),
	})
	if err != nil {
		return false, r.fail("get item", err)
	}
	return len(out.Item) > 0, nil
}

// Delete removes the entity with the given id and reports whether it existed.
func (r *Repo[E, S, P, F]) Delete(ctx context.Context, id entity.ID) (bool, error) {
	out, err := r.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:    aws.String(r.table),
		Key:          r.key(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, r.fail("delete item", err)
	}
	return len(out.Attributes) > 0, nil
}

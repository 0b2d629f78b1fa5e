//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddbrepo

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/docrepo/entity"
)

// setupIntegration connects to the endpoint in DDB_TEST_ENDPOINT (DynamoDB
// Local works) and recreates the parts table.
func setupIntegration(t *testing.T) *partRepo {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	endpoint := os.Getenv("DDB_TEST_ENDPOINT")
	if endpoint == "" {
		t.Skip("DDB_TEST_ENDPOINT not set, skipping integration test")
	}
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	ctx := context.Background()
	client, err := NewDynamoDBClient(ctx, ClientConfig{
		Region:    region,
		Endpoint:  endpoint,
		AccessKey: "local",
		SecretKey: "local",
	})
	require.NoError(t, err)

	_, _ = client.DeleteTable(ctx, &sdk.DeleteTableInput{TableName: aws.String(TableName[part]())})
	waiter := sdk.NewTableNotExistsWaiter(client)
	_ = waiter.Wait(ctx, &sdk.DescribeTableInput{TableName: aws.String(TableName[part]())}, tableWaitTimeout)
	require.NoError(t, EnsureTable[part](ctx, client))

	return NewRepo[part, partSpec, partPatch, partFilter](client, WithPageSize(2))
}

func TestIntegrationLifecycle(t *testing.T) {
	parts := setupIntegration(t)
	ctx := context.Background()

	id, err := parts.Create(ctx, partSpec{Name: "Widget", Bin: "A", Stock: 4})
	require.NoError(t, err)

	got, err := parts.Retrieve(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, part{ID: id, Name: "Widget", Bin: "A", Stock: 4}, *got)

	updated, err := parts.Update(ctx, partPatch{ID: id, Name: ptr("Gadget")})
	require.NoError(t, err)
	assert.True(t, updated)

	got, err = parts.Retrieve(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, part{ID: id, Name: "Gadget", Bin: "A", Stock: 4}, *got)

	updated, err = parts.Update(ctx, partPatch{ID: entity.NewID(), Name: ptr("ghost")})
	require.NoError(t, err)
	assert.False(t, updated)

	deleted, err := parts.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = parts.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err = parts.Retrieve(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIntegrationScan(t *testing.T) {
	parts := setupIntegration(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		bin := "A"
		if i%2 == 0 {
			bin = "B"
		}
		_, err := parts.Create(ctx, partSpec{Name: fmt.Sprintf("p%d", i), Bin: bin, Stock: i})
		require.NoError(t, err)
	}

	all, err := parts.RetrieveAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)

	inB, err := parts.FindAll(ctx, partFilter{Bin: ptr("B")})
	require.NoError(t, err)
	assert.Len(t, inB, 3)

	seen := make(map[entity.ID]int)
	for offset := 0; offset < len(all); offset += 2 {
		page, err := parts.RetrievePage(ctx, offset, 2)
		require.NoError(t, err)
		for _, p := range page {
			seen[p.ID]++
		}
	}
	for _, p := range all {
		assert.Equal(t, 1, seen[p.ID])
	}
}

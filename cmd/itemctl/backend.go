/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/suparena/docrepo/internal/config"
	"github.com/suparena/docrepo/internal/items"
	"github.com/suparena/docrepo/repository/ddbrepo"
	"github.com/suparena/docrepo/repository/memrepo"
	"github.com/suparena/docrepo/repository/mongorepo"
)

type closeFunc func(ctx context.Context) error

// openBackend connects to the store selected by cfg.Backend.
func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (items.Context, closeFunc, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		client, err := mongorepo.Connect(ctx, mongorepo.ClientConfig{
			URI:            cfg.Mongo.URI,
			Host:           cfg.Mongo.Host,
			Port:           cfg.Mongo.Port,
			ReplicaSet:     cfg.Mongo.ReplicaSet,
			ConnectTimeout: cfg.Mongo.ConnectTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		mc := mongorepo.NewContext(client, mongorepo.WithLogger(log))
		return items.NewMongoContext(mc), client.Disconnect, nil

	case config.BackendDynamoDB:
		client, err := ddbrepo.NewDynamoDBClient(ctx, ddbrepo.ClientConfig{
			Region:    cfg.DynamoDB.Region,
			Endpoint:  cfg.DynamoDB.Endpoint,
			AccessKey: cfg.DynamoDB.AccessKey,
			SecretKey: cfg.DynamoDB.SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := ddbrepo.EnsureTable[items.Item](ctx, client); err != nil {
			return nil, nil, err
		}
		repo := ddbrepo.NewRepo[items.Item, items.Spec, items.Patch, items.Filter](client, ddbrepo.WithLogger(log))
		return items.NewDirectContext(repo), nil, nil

	case config.BackendMemory:
		return items.NewMemoryContext(memrepo.New(memrepo.WithLogger(log))), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

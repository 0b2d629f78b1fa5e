/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongorepo

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 27017

	defaultConnectTimeout = 10 * time.Second
)

// ClientConfig holds the connection settings for a MongoDB deployment.
type ClientConfig struct {
	// URI overrides Host and Port when set
	URI            string
	Host           string
	Port           int
	ReplicaSet     string
	ConnectTimeout time.Duration
}

// ConnectionURI returns the mongodb:// URI for the configured host and port.
func (c ClientConfig) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("mongodb://%s", net.JoinHostPort(host, strconv.Itoa(port)))
}

// Connect creates a client and pings the primary before returning it.
func Connect(ctx context.Context, cfg ClientConfig) (*mongo.Client, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetConnectTimeout(timeout)
	if cfg.ReplicaSet != "" {
		opts.SetReplicaSet(cfg.ReplicaSet)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.ConnectionURI(), err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping %s: %w", cfg.ConnectionURI(), err)
	}

	return client, nil
}

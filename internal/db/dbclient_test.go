//go:build integration

package db_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakewarden-io/nft-staking-engine/internal/config"
	"github.com/stakewarden-io/nft-staking-engine/internal/db"
	"github.com/stakewarden-io/nft-staking-engine/internal/db/model"
	"github.com/stakewarden-io/nft-staking-engine/testutil"
)

const (
	mongoUsername = "user"
	mongoPassword = "password"
	mongoDatabase = "test-database"

	// this version corresponds to docker tag for mongodb
	// it should be in sync with mongo version used in production
	mongoVersion = "7.0.5"
)

var testDB *db.Database

// mongo connected to test database, used for truncating collections
var mongoDB *mongo.Database

func TestMain(m *testing.M) {
	// first setup container with MongoDb
	dbConfig, cleanup, err := setupMongoContainer()
	if err != nil {
		log.Fatalf("failed to setup mongo container: %v", err)
	}

	// apply migrations
	err = model.Setup(context.Background(), dbConfig)
	if err != nil {
		cleanup()
		log.Fatalf("failed to init mongo database: %v", err)
	}

	// using config from container mongo initialize client used in tests
	testDB, err = setupClient(dbConfig)
	if err != nil {
		cleanup()
		log.Fatalf("failed to setup client: %v", err)
	}

	mongoDB, err = setupRawClient(dbConfig)
	if err != nil {
		cleanup()
		log.Fatalf("failed to setup raw mongo client: %v", err)
	}

	// integration tests run on this line
	code := m.Run()
	cleanup()

	os.Exit(code)
}

func TestPing(t *testing.T) {
	require.NoError(t, testDB.Ping(t.Context()))
}

// setupMongoContainer setups container with mongodb returning db credentials through config.DbConfig,
// cleanup function that MUST be called in the end to cleanup docker resources and an error if there is any
func setupMongoContainer() (*config.DbConfig, func(), error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, err
	}

	// there can be only 1 container with the same name, so we add
	// random string in the end in case there is still old container running
	containerName := "mongo-integration-tests-db-" + testutil.RandomAlphaNum(3)
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       containerName,
		Repository: "mongo",
		Tag:        mongoVersion,
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=" + mongoUsername,
			"MONGO_INITDB_ROOT_PASSWORD=" + mongoPassword,
			"MONGO_INITDB_DATABASE=" + mongoDatabase,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		err := pool.Purge(resource)
		if err != nil {
			log.Fatalf("failed to purge resource: %v", err)
		}
	}

	// get host port (randomly chosen) that is mapped to mongo port inside container
	hostPort := resource.GetPort("27017/tcp")

	return &config.DbConfig{
		Username: mongoUsername,
		Password: mongoPassword,
		DbName:   mongoDatabase,
		Address:  fmt.Sprintf("mongodb://localhost:%s/", hostPort),
	}, cleanup, nil
}

func setupClient(cfg *config.DbConfig) (*db.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.New(ctx, *cfg)
}

func setupRawClient(cfg *config.DbConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	})
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return nil, err
	}
	return client.Database(cfg.DbName), nil
}

func resetDatabase(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	for _, name := range []string{
		model.LedgerStateCollection,
		model.StakerAccountCollection,
		model.EventLogCollection,
	} {
		_, err := mongoDB.Collection(name).DeleteMany(ctx, map[string]any{})
		require.NoError(t, err)
	}
}

package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dancojocaru2000/new-infofer-scraper/pkg/util"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "infofer"

// schemaVersion is the layout of the listing collections this build
// expects. Stored in the meta collection on first connect and verified on
// every later one.
const schemaVersion = 3

func Connect() error {
	connectionString := defaultMongoConnectionString
	dbName := defaultMongoDatabase

	env := util.GetEnvironmentVariables()

	if env["SCRAPER_MONGODB_CONNECTION"] != "" {
		connectionString = env["SCRAPER_MONGODB_CONNECTION"]
	}

	if env["SCRAPER_MONGODB_DATABASE"] != "" {
		dbName = env["SCRAPER_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		return err
	}

	if err := ensureSchemaVersion(); err != nil {
		return err
	}

	createIndexes()

	return nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}

type metaDocument struct {
	Version int `bson:"version"`
}

func ensureSchemaVersion() error {
	metaCollection := GetCollection("meta")

	var meta metaDocument
	err := metaCollection.FindOne(context.Background(), bson.D{}).Decode(&meta)
	if err == mongo.ErrNoDocuments {
		_, err = metaCollection.InsertOne(context.Background(), metaDocument{Version: schemaVersion})
		return err
	}
	if err != nil {
		return err
	}

	if meta.Version != schemaVersion {
		return fmt.Errorf("database schema version %d, expected %d", meta.Version, schemaVersion)
	}

	return nil
}

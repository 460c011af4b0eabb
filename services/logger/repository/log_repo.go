package repository

import (
	"context"

	applog "matchmaker/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

const collectionLogs = "logs"

type LogRepository struct {
	collection *mongo.Collection
}

func NewLogRepository(mongoClient *mongo.Client, database string) *LogRepository {
	return &LogRepository{
		collection: mongoClient.Database(database).Collection(collectionLogs),
	}
}

// InsertLog는 로그를 MongoDB에 저장합니다
func (r *LogRepository) InsertLog(ctx context.Context, log applog.BaseLog) error {
	_, err := r.collection.InsertOne(ctx, log)
	return err
}

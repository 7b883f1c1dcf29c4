package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mjx/common/database"
	"mjx/common/log"
	"mjx/core/domain/entity"
	"mjx/core/domain/repository"
)

const (
	gameRecordCollection  = "game_records"
	roundRecordCollection = "round_records"
)

type GameRecordRepository struct {
	mongo *database.MongoManager
}

func NewGameRecordRepository(mongo *database.MongoManager) repository.GameRecordRepository {
	return &GameRecordRepository{mongo: mongo}
}

// SaveGameRecord 保存对局记录（元数据）
func (r *GameRecordRepository) SaveGameRecord(ctx context.Context, record *entity.GameRecord) error {
	collection := r.mongo.Db.Collection(gameRecordCollection)
	if _, err := collection.InsertOne(ctx, record); err != nil {
		log.Error("保存对局记录失败: %v", err)
		return errors.Join(repository.ErrMongodb, err)
	}
	return nil
}

// FindGameRecord 根据引擎对局 ID 查找
func (r *GameRecordRepository) FindGameRecord(ctx context.Context, gameID string) (*entity.GameRecord, error) {
	collection := r.mongo.Db.Collection(gameRecordCollection)

	record := new(entity.GameRecord)
	err := collection.FindOne(ctx, bson.M{"game_id": gameID}).Decode(record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrGameRecordNotFound
		}
		log.Error("查询对局记录失败: %v", err)
		return nil, errors.Join(repository.ErrMongodb, err)
	}
	return record, nil
}

// SaveRoundRecords 批量保存局记录（使用 MongoDB InsertMany）
func (r *GameRecordRepository) SaveRoundRecords(ctx context.Context, rounds []*entity.RoundRecord) error {
	docs := make([]any, 0, len(rounds))
	for _, round := range rounds {
		if round != nil {
			docs = append(docs, round)
		}
	}
	if len(docs) == 0 {
		return nil
	}

	collection := r.mongo.Db.Collection(roundRecordCollection)
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		log.Error("批量保存局记录失败: %v", err)
		return errors.Join(repository.ErrMongodb, err)
	}
	log.Debug("批量保存局记录成功: count=%d", len(docs))
	return nil
}

// FindRoundRecords 查找对局的所有局记录（按局数排序）
func (r *GameRecordRepository) FindRoundRecords(ctx context.Context, gameRecordID primitive.ObjectID) ([]*entity.RoundRecord, error) {
	collection := r.mongo.Db.Collection(roundRecordCollection)

	opts := options.Find().SetSort(bson.D{{Key: "round_number", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"game_record_id": gameRecordID}, opts)
	if err != nil {
		log.Error("查询局记录失败: %v", err)
		return nil, errors.Join(repository.ErrMongodb, err)
	}
	defer cursor.Close(ctx)

	var rounds []*entity.RoundRecord
	if err := cursor.All(ctx, &rounds); err != nil {
		log.Error("解析局记录失败: %v", err)
		return nil, errors.Join(repository.ErrMongodb, err)
	}
	return rounds, nil
}

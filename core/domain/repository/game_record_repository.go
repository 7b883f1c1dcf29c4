package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mjx/core/domain/entity"
)

// GameRecordRepository 对局记录仓储接口
type GameRecordRepository interface {
	// SaveGameRecord 保存对局记录（元数据）
	SaveGameRecord(ctx context.Context, record *entity.GameRecord) error

	// FindGameRecord 根据引擎对局 ID 查找
	FindGameRecord(ctx context.Context, gameID string) (*entity.GameRecord, error)

	// SaveRoundRecords 批量保存局记录
	SaveRoundRecords(ctx context.Context, rounds []*entity.RoundRecord) error

	// FindRoundRecords 查找对局的所有局记录（按局数排序）
	FindRoundRecords(ctx context.Context, gameRecordID primitive.ObjectID) ([]*entity.RoundRecord, error)
}

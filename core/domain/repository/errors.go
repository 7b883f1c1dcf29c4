package repository

import "errors"

var (
	ErrGameRecordNotFound = errors.New("game record not found")
	ErrMongodb            = errors.New("mongodb error happen")
	ErrRedis              = errors.New("redis error happen")
	ErrPublish            = errors.New("publish error happen")
)

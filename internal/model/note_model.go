package model

import (
	"time"

	"gorm.io/datatypes"
)

type Note struct {
	Id        int64             `gorm:"primaryKey;autoIncrement"`
	Title     string            `gorm:"not null"`
	Body      string            `gorm:"not null"`
	Extra     datatypes.JSONMap `gorm:"column:extra"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}

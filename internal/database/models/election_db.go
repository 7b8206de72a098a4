package db_models

type ElectionDB struct {
	Id               string `gorm:"primaryKey;column:id"`
	Title            string `gorm:"column:title;not null"`
	Description      string `gorm:"column:description;not null"`
	StartTimestamp   int64  `gorm:"column:start_timestamp;not null"`
	EndTimestamp     int64  `gorm:"column:end_timestamp;not null"`
	CreatedBy        string `gorm:"column:created_by;not null"`
	IsActive         bool   `gorm:"column:is_active;not null"`
	ResultsPublished bool   `gorm:"column:results_published;not null"`
	CreatedAt        int64  `gorm:"column:created_at;not null"`

	Candidates  []CandidateDB  `gorm:"foreignKey:ElectionId;references:Id;constraint:OnDelete:RESTRICT,OnUpdate:RESTRICT"`
	VoteRecords []VoteRecordDB `gorm:"foreignKey:ElectionId;references:Id;constraint:OnDelete:RESTRICT,OnUpdate:RESTRICT"`
}

func (ElectionDB) TableName() string {
	return "elections"
}

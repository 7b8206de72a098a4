package db_models

type CandidateDB struct {
	Id          uint   `gorm:"primaryKey;autoIncrement;column:id"`
	ElectionId  string `gorm:"column:election_id;not null;uniqueIndex:idx_candidates_election_candidate"`
	CandidateId uint32 `gorm:"column:candidate_id;not null;uniqueIndex:idx_candidates_election_candidate"`
	Name        string `gorm:"column:name;not null"`
	Party       string `gorm:"column:party;not null"`
	Manifesto   string `gorm:"column:manifesto"`
	CreatedAt   int64  `gorm:"column:created_at;not null"`
}

func (CandidateDB) TableName() string {
	return "candidates"
}

package db_models

// The composite unique index on (user_id, election_id) is a secondary guard
// against duplicate receipt rows. It is not what prevents double voting,
// the ledger contract is.
type VoteRecordDB struct {
	Id              uint   `gorm:"primaryKey;autoIncrement;column:id"`
	UserId          string `gorm:"column:user_id;not null;uniqueIndex:idx_vote_records_user_election"`
	ElectionId      string `gorm:"column:election_id;not null;uniqueIndex:idx_vote_records_user_election"`
	VoterAddress    string `gorm:"column:voter_address;not null"`
	TransactionHash string `gorm:"column:transaction_hash;not null"`
	BlockNumber     uint64 `gorm:"column:block_number;not null"`
	Timestamp       int64  `gorm:"column:timestamp;not null"`
}

func (VoteRecordDB) TableName() string {
	return "vote_records"
}

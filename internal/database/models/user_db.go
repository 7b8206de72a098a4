package db_models

type UserDB struct {
	Id           string `gorm:"primaryKey;column:id"`
	Name         string `gorm:"column:name;not null"`
	Email        string `gorm:"column:email;uniqueIndex;not null"`
	Role         string `gorm:"column:role;not null"`
	IsVerified   bool   `gorm:"column:is_verified;not null"`
	VoterAddress string `gorm:"column:voter_address;uniqueIndex;not null"`
	DateOfBirth  int64  `gorm:"column:date_of_birth;not null"`
	IdDocument   string `gorm:"column:id_document"`
	CreatedAt    int64  `gorm:"column:created_at;not null"`

	VoteRecords []VoteRecordDB `gorm:"foreignKey:UserId;references:Id;constraint:OnDelete:RESTRICT,OnUpdate:RESTRICT"`
}

func (UserDB) TableName() string {
	return "users"
}

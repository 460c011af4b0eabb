package models

type User struct {
	ID        int            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"size:255;index" json:"name"`
	Age       int            `json:"age"`
	Gender    string         `gorm:"size:255" json:"gender"`
	Email     string         `gorm:"size:255;uniqueIndex" json:"email"`
	City      string         `gorm:"size:255;index" json:"city"`
	Interests []UserInterest `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// 유저 관심사 (user_id, interest) 단위로 저장, position으로 입력 순서 유지
type UserInterest struct {
	UserID   int    `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Interest string `gorm:"primaryKey;size:255;index" json:"interest"`
	Position int    `json:"position"`
}

// 관심사 문자열 목록 (position 순)
func (u *User) InterestNames() []string {
	names := make([]string, len(u.Interests))
	for i, in := range u.Interests {
		names[i] = in.Interest
	}
	return names
}

// 문자열 목록으로 관심사 설정
func (u *User) SetInterests(names []string) {
	u.Interests = make([]UserInterest, len(names))
	for i, name := range names {
		u.Interests[i] = UserInterest{UserID: u.ID, Interest: name, Position: i}
	}
}

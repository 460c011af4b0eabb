package dto

// 매칭 조회 쿼리 파라미터
type MatchQuery struct {
	Skip     int `query:"skip"`
	Limit    int `query:"limit"`
	AgeLimit int `query:"age_limit"`
}

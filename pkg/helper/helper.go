package helper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

func ToJSON(data interface{}) json.RawMessage {
	bytes, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return json.RawMessage(bytes)
}

// 관심사 목록 정리: 앞뒤 공백 제거, 빈 값 제거, 최초 등장 순서를 유지한 중복 제거
func NormalizeInterests(interests []string) []string {
	trimmed := lo.FilterMap(interests, func(item string, _ int) (string, bool) {
		s := strings.TrimSpace(item)
		return s, s != ""
	})
	return lo.Uniq(trimmed)
}

// 경로의 첫 번째 요소와 나머지 경로 분리 ("/users/3" -> "users", "/3")
func ExtractFirstPath(path string) (string, string) {
	parts := strings.SplitN(path, "/", 3)

	if len(parts) > 1 {
		firstPath := parts[1]
		if len(parts) > 2 {
			return firstPath, "/" + parts[2]
		}
		return firstPath, "/"
	}

	return "", "/"
}

func IntToStringArray(arr []int) []string {
	return lo.Map(arr, func(item int, _ int) string {
		return strconv.Itoa(item)
	})
}

func StringToIntArrary(strSlice []string) ([]int, error) {
	intSlice := make([]int, 0, len(strSlice))
	for _, str := range strSlice {
		num, err := strconv.Atoi(str)
		if err != nil {
			return nil, err
		}
		intSlice = append(intSlice, num)
	}
	return intSlice, nil
}

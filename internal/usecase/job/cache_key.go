package job

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"job-board/internal/domain/job"
)

const cacheKeyPrefix = "jobs:"

type searchKeyInput struct {
	Title       string `json:"title"`
	JobType     string `json:"job_type"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Skill       string `json:"skill"`
}

type filterKeyInput struct {
	JobType     string `json:"job_type"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Skill       string `json:"skill"`
	MinSalary   *int64 `json:"min_salary"`
	MaxSalary   *int64 `json:"max_salary"`
	Recent      bool   `json:"recent"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
}

// normalizeKeyValue folds case only. Inner whitespace is part of the
// ILIKE pattern, so "a  b" and "a b" must not share an entry.
func normalizeKeyValue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func listCacheKey(page, limit int) string {
	return cacheKeyPrefix + "list:" + strconv.Itoa(page) + ":" + strconv.Itoa(limit)
}

func searchCacheKey(f job.SearchFilter) string {
	return cacheKeyPrefix + "search:" + hashKey(searchKeyInput{
		Title:       normalizeKeyValue(f.Title),
		JobType:     normalizeKeyValue(f.JobType),
		CompanyName: normalizeKeyValue(f.CompanyName),
		Location:    normalizeKeyValue(f.Location),
		Skill:       normalizeKeyValue(f.Skill),
	})
}

func filterCacheKey(f job.Filter) string {
	return cacheKeyPrefix + "filter:" + hashKey(filterKeyInput{
		JobType:     normalizeKeyValue(f.JobType),
		CompanyName: normalizeKeyValue(f.CompanyName),
		Location:    normalizeKeyValue(f.Location),
		Skill:       normalizeKeyValue(f.Skill),
		MinSalary:   f.MinSalary,
		MaxSalary:   f.MaxSalary,
		Recent:      f.Recent,
		Limit:       f.Limit,
		Offset:      f.Offset,
	})
}

func hashKey(v any) string {
	b, _ := json.Marshal(v)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

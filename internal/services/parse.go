package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/justsurfingit/jobhunt/internal/models"
)

var ErrNoJSON = errors.New("no JSON found in model output")

// ParseJobs reads a list of jobs out of model output. It accepts a bare array,
// an object with a "jobs" array, or a single job object, and tolerates code
// fences and prose around the JSON. Records with neither title nor company are dropped.
func ParseJobs(output string) ([]models.Job, error) {
	return parseJobs(output, false)
}

// ParseJob reads a single job out of model output. An array yields its first element.
func ParseJob(output string) (models.Job, error) {
	return parseJob(output, false)
}

// parseJobUpdate reads a partial job, e.g. a follow-up reply that only carries
// the fields found on the job's own page.
func parseJobUpdate(output string) (models.Job, error) {
	return parseJob(output, true)
}

func parseJob(output string, keepEmpty bool) (models.Job, error) {
	jobs, err := parseJobs(output, keepEmpty)
	if err != nil {
		return models.Job{}, err
	}
	if len(jobs) == 0 {
		return models.Job{}, ErrNoJSON
	}
	return jobs[0], nil
}

func parseJobs(output string, keepEmpty bool) ([]models.Job, error) {
	payload, err := extractJSON(output)
	if err != nil {
		return nil, err
	}

	var raws []rawJob
	switch payload[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, err
		}
		raws = decodeItems(items)
	case '{':
		var envelope struct {
			Jobs []json.RawMessage `json:"jobs"`
		}
		if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Jobs != nil {
			raws = decodeItems(envelope.Jobs)
			break
		}
		var single rawJob
		if err := json.Unmarshal(payload, &single); err != nil {
			return nil, err
		}
		raws = []rawJob{single}
	}

	jobs := make([]models.Job, 0, len(raws))
	for _, r := range raws {
		job := r.toJob()
		if !keepEmpty && job.IsEmpty() {
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// decodeItems keeps the array elements that decode as job objects.
func decodeItems(items []json.RawMessage) []rawJob {
	raws := make([]rawJob, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		var r rawJob
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		raws = append(raws, r)
	}
	return raws
}

// extractJSON returns the first balanced, valid JSON array or object holding
// at least one object. Fenced blocks are searched first, then the raw output.
func extractJSON(output string) ([]byte, error) {
	if fenced := stripFences(output); fenced != output {
		if payload, err := findJSON(fenced); err == nil {
			return payload, nil
		}
	}
	return findJSON(output)
}

func findJSON(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	for offset := 0; offset < len(s); {
		i := strings.IndexAny(s[offset:], "[{")
		if i < 0 {
			break
		}
		start := offset + i
		if end := matchingBracket(s, start); end > 0 {
			candidate := []byte(s[start : end+1])
			if json.Valid(candidate) && bytes.ContainsRune(candidate, '{') {
				return candidate, nil
			}
		}
		offset = start + 1
	}
	return nil, ErrNoJSON
}

func stripFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	var out []string
	inside := false
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inside = !inside
			continue
		}
		if inside {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return strings.ReplaceAll(s, "```", "")
	}
	return strings.Join(out, "\n")
}

// matchingBracket returns the index closing the bracket at start, skipping string literals.
func matchingBracket(s string, start int) int {
	var (
		stack    []byte
		inString bool
		escaped  bool
	)
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			stack = append(stack, c)
		case ']', '}':
			if len(stack) == 0 {
				return -1
			}
			open := stack[len(stack)-1]
			if (open == '[' && c != ']') || (open == '{' && c != '}') {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		}
	}
	return -1
}

type rawJob struct {
	JobType            flexString  `json:"job_type"`
	JobTitle           flexString  `json:"job_title"`
	Company            flexString  `json:"company"`
	Salary             flexString  `json:"salary"`
	Location           flexString  `json:"location"`
	ContactEmail       flexString  `json:"contact_email"`
	CompanyLink        flexString  `json:"company_link"`
	JobLink            flexString  `json:"job_link"`
	Technologies       flexStrings `json:"technologies"`
	JobDescription     flexString  `json:"job_description"`
	CompanyDescription flexString  `json:"company_description"`
	JobSource          flexString  `json:"job_source"`
}

func (r rawJob) toJob() models.Job {
	return models.Job{
		JobType:            models.ParseJobType(string(r.JobType)),
		JobTitle:           string(r.JobTitle),
		Company:            string(r.Company),
		Salary:             string(r.Salary),
		Location:           string(r.Location),
		ContactEmail:       string(r.ContactEmail),
		CompanyLink:        string(r.CompanyLink),
		JobLink:            string(r.JobLink),
		Technologies:       []string(r.Technologies),
		JobDescription:     string(r.JobDescription),
		CompanyDescription: string(r.CompanyDescription),
		JobSource:          string(r.JobSource),
	}
}

// flexString decodes any JSON scalar into a trimmed string. null becomes "".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
	case '[':
		var list flexStrings
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*f = flexString(strings.Join(list, ", "))
	case '{':
		*f = flexString(string(data))
	default:
		// numbers and booleans
		if _, err := strconv.ParseFloat(string(data), 64); err != nil && string(data) != "true" && string(data) != "false" {
			return err
		}
		*f = flexString(string(data))
	}
	return nil
}

// flexStrings decodes an array, a comma or newline separated string, or null.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if data[0] == '[' {
		var items []flexString
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make([]string, 0, len(items))
		for _, it := range items {
			if it != "" {
				out = append(out, string(it))
			}
		}
		*f = out
		return nil
	}
	var s flexString
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = splitList(string(s))
	return nil
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), "-"))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

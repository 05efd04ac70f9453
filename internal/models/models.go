package models

import (
	"strings"
)

// JobType is the category a posting is filed under. It picks the cover letter template.
type JobType string

const (
	JobTypeUnknown          JobType = ""
	JobTypeSoftwareEngineer JobType = "Software Engineer"
	JobTypeProductManager   JobType = "Product Manager"
	JobTypeDataScientist    JobType = "Data Scientist"
	JobTypeDataEngineer     JobType = "Data Engineer"
	JobTypePythonDeveloper  JobType = "Python Developer"
	JobTypeAIDeveloper      JobType = "AI Developer"
	JobTypeAIEngineer       JobType = "AI Engineer"
)

// JobTypes lists every known type in declaration order.
var JobTypes = []JobType{
	JobTypeSoftwareEngineer,
	JobTypeProductManager,
	JobTypeDataScientist,
	JobTypeDataEngineer,
	JobTypePythonDeveloper,
	JobTypeAIDeveloper,
	JobTypeAIEngineer,
}

// ParseJobType matches s against the known types, ignoring case, spacing and
// underscores, so "software_engineer" and "SOFTWARE ENGINEER" both resolve.
func ParseJobType(s string) JobType {
	key := normalizeTypeKey(s)
	if key == "" {
		return JobTypeUnknown
	}
	for _, t := range JobTypes {
		if normalizeTypeKey(string(t)) == key {
			return t
		}
	}
	return JobTypeUnknown
}

// Slug is the lower snake-case form used in template file names.
func (t JobType) Slug() string {
	return strings.Join(strings.Fields(strings.ToLower(string(t))), "_")
}

func normalizeTypeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Job is a single posting as extracted from a listings page.
type Job struct {
	JobType            JobType  `json:"job_type"`
	JobTitle           string   `json:"job_title"`
	Company            string   `json:"company"`
	Salary             string   `json:"salary"`
	Location           string   `json:"location"`
	ContactEmail       string   `json:"contact_email"`
	CompanyLink        string   `json:"company_link"`
	JobLink            string   `json:"job_link"`
	Technologies       []string `json:"technologies"`
	JobDescription     string   `json:"job_description"`
	CompanyDescription string   `json:"company_description"`
	JobSource          string   `json:"job_source"`
}

// Field describes one attribute of Job for prompts and sheet headers.
type Field struct {
	Name        string
	Description string
}

var jobFields = []Field{
	{"job_type", "The type of job, one of: " + joinTypes()},
	{"job_title", "The job title"},
	{"company", "The name of the company"},
	{"salary", "The salary of the job"},
	{"location", "The location of the job"},
	{"contact_email", "The email of the contact person"},
	{"company_link", "The link to the company"},
	{"job_link", "The link to the job"},
	{"technologies", "The technologies used in the job (list of strings)"},
	{"job_description", "The description of the job"},
	{"company_description", "The description of the company"},
	{"job_source", "Source of job information"},
}

func joinTypes() string {
	names := make([]string, len(JobTypes))
	for i, t := range JobTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// JobFields returns the Job attributes in column order.
func JobFields() []Field {
	out := make([]Field, len(jobFields))
	copy(out, jobFields)
	return out
}

// CoverLetterLinkColumn is the header of the last spreadsheet column.
const CoverLetterLinkColumn = "cover_letter_link"

// Columns returns the spreadsheet header row.
func Columns() []string {
	cols := make([]string, 0, len(jobFields)+1)
	for _, f := range jobFields {
		cols = append(cols, f.Name)
	}
	return append(cols, CoverLetterLinkColumn)
}

// Values returns the job's cells in column order, lists joined with ", ".
func (j Job) Values() []string {
	return []string{
		string(j.JobType),
		j.JobTitle,
		j.Company,
		j.Salary,
		j.Location,
		j.ContactEmail,
		j.CompanyLink,
		j.JobLink,
		strings.Join(j.Technologies, ", "),
		j.JobDescription,
		j.CompanyDescription,
		j.JobSource,
	}
}

// Row is the spreadsheet row for the job with the cover letter link as the last cell.
func (j Job) Row(coverLetterLink string) []interface{} {
	values := j.Values()
	row := make([]interface{}, 0, len(values)+1)
	for _, v := range values {
		row = append(row, v)
	}
	return append(row, coverLetterLink)
}

// Merge overwrites fields of j with the non-empty fields of update.
func (j *Job) Merge(update Job) {
	if update.JobType != JobTypeUnknown {
		j.JobType = update.JobType
	}
	mergeString(&j.JobTitle, update.JobTitle)
	mergeString(&j.Company, update.Company)
	mergeString(&j.Salary, update.Salary)
	mergeString(&j.Location, update.Location)
	mergeString(&j.ContactEmail, update.ContactEmail)
	mergeString(&j.CompanyLink, update.CompanyLink)
	mergeString(&j.JobLink, update.JobLink)
	if len(update.Technologies) > 0 {
		j.Technologies = append([]string(nil), update.Technologies...)
	}
	mergeString(&j.JobDescription, update.JobDescription)
	mergeString(&j.CompanyDescription, update.CompanyDescription)
	mergeString(&j.JobSource, update.JobSource)
}

func mergeString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

// IsEmpty reports whether the record carries neither a title nor a company.
func (j Job) IsEmpty() bool {
	return strings.TrimSpace(j.JobTitle) == "" && strings.TrimSpace(j.Company) == ""
}

// CoverLetterTitle is the title of the document holding the job's cover letter.
func (j Job) CoverLetterTitle() string {
	return j.JobTitle + " at " + j.Company + " Cover Letter"
}

// ProcessedJob is a job after follow-up, cover letter generation and storage.
type ProcessedJob struct {
	Job              Job    `json:"job"`
	CoverLetter      string `json:"cover_letter,omitempty"`
	CoverLetterDocID string `json:"cover_letter_doc_id,omitempty"`
	CoverLetterLink  string `json:"cover_letter_link,omitempty"`
}

// RunResult summarises one pass over a listings page.
type RunResult struct {
	RunID        string         `json:"run_id"`
	Link         string         `json:"link"`
	Jobs         []ProcessedJob `json:"jobs"`
	RowsAppended int64          `json:"rows_appended"`
}

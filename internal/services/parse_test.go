package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/justsurfingit/jobhunt/internal/models"
)

func TestParseJobsFromFencedArray(t *testing.T) {
	out := "Here are the jobs I found:\n```json\n" + `[
  {"job_type": "software_engineer", "job_title": "Backend Engineer", "company": "Acme",
   "technologies": ["Go", "Postgres"], "salary": null, "job_source": "Hacker News"},
  {"job_type": "", "job_title": "", "company": ""}
]` + "\n```\nLet me know if you need more."

	jobs, err := ParseJobs(out)
	if err != nil {
		t.Fatalf("ParseJobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected empty record dropped, got %d jobs", len(jobs))
	}
	want := models.Job{
		JobType:      models.JobTypeSoftwareEngineer,
		JobTitle:     "Backend Engineer",
		Company:      "Acme",
		Technologies: []string{"Go", "Postgres"},
		JobSource:    "Hacker News",
	}
	if !reflect.DeepEqual(jobs[0], want) {
		t.Fatalf("unexpected job:\n got %+v\nwant %+v", jobs[0], want)
	}
}

func TestParseJobsLenientScalars(t *testing.T) {
	out := `{"jobs": [{"job_title": "  Data Engineer ", "company": "Widgets",
		"salary": 55000, "technologies": "Python, Spark;\n- Airflow", "job_type": "DATA ENGINEER"}]}`

	jobs, err := ParseJobs(out)
	if err != nil {
		t.Fatalf("ParseJobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	job := jobs[0]
	if job.JobTitle != "Data Engineer" || job.Salary != "55000" || job.JobType != models.JobTypeDataEngineer {
		t.Fatalf("unexpected scalars: %+v", job)
	}
	if !reflect.DeepEqual(job.Technologies, []string{"Python", "Spark", "Airflow"}) {
		t.Fatalf("unexpected technologies: %#v", job.Technologies)
	}
}

func TestParseJobsSkipsNonJSONBrackets(t *testing.T) {
	out := `I found [2] roles. {"job_title": "PM", "company": "Foo"}`
	jobs, err := ParseJobs(out)
	if err != nil {
		t.Fatalf("ParseJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].JobTitle != "PM" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestParseJobsBracesInsideStrings(t *testing.T) {
	out := `[{"job_title": "Engineer {platform}", "company": "Braces ] Inc", "job_description": "uses \"quotes\" and }"}]`
	jobs, err := ParseJobs(out)
	if err != nil {
		t.Fatalf("ParseJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Company != "Braces ] Inc" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestParseJobNoJSON(t *testing.T) {
	if _, err := ParseJob("Sorry, I could not open that page."); !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
	if _, err := ParseJob(`{"salary": "100k"}`); !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON for record without title/company, got %v", err)
	}
}

func TestParseJobsSkipsNonObjectElements(t *testing.T) {
	out := `[{"job_title": "A", "company": "B"}, "see more on the site", 3, null, {"job_title": "C", "company": "D"}]`
	jobs, err := ParseJobs(out)
	if err != nil {
		t.Fatalf("ParseJobs: %v", err)
	}
	if len(jobs) != 2 || jobs[0].JobTitle != "A" || jobs[1].JobTitle != "C" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}

	jobs, err = ParseJobs(`{"jobs": ["none", {"job_title": "E", "company": "F"}]}`)
	if err != nil {
		t.Fatalf("ParseJobs envelope: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Company != "F" {
		t.Fatalf("unexpected envelope jobs: %+v", jobs)
	}
}

func TestParseJobsFencedNoteThenBareJSON(t *testing.T) {
	out := "```\nnote: two roles found\n```\n[{\"job_title\":\"A\",\"company\":\"B\"}]"
	jobs, err := ParseJobs(out)
	if err != nil {
		t.Fatalf("ParseJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].JobTitle != "A" || jobs[0].Company != "B" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestParseJobUpdateKeepsPartialRecord(t *testing.T) {
	job, err := parseJobUpdate(`{"salary": "60k", "job_description": "more"}`)
	if err != nil {
		t.Fatalf("parseJobUpdate: %v", err)
	}
	if job.Salary != "60k" || job.JobDescription != "more" || job.JobTitle != "" {
		t.Fatalf("unexpected job: %+v", job)
	}
	if _, err := parseJobUpdate("nothing useful here"); !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
}

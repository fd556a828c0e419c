package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `staffplan tracks who works on which client project, and how much of each day.

Core concepts:
- Employee, Client, Project: master data. Projects belong to a client and carry a start and end date.
- Knowledge: skill tags shared by employees (what they know) and projects (what they need).
- Allocation: an employee assigned to a project for an inclusive date range at 1-100 percent of a working day.
- Overlap: a window where one employee's allocations sum above the threshold (default 100).

Conventions:
- Dates are YYYY-MM-DD and ranges include both ends.
- Allocations must sit inside their project's date window.
- update_allocation needs the version you last read. CONFLICT means someone else changed it; re-read and retry.

Typical workflow:
1) Find people: search_employees / list_employees, or suggest_candidates for a project.
2) Check capacity: get_availability, get_workload, or get_calendar.
3) Book: create_allocation, then detect_overlaps for the employee.

Docs:
- staffplan://docs/index
- staffplan://docs/conventions
- staffplan://docs/workflows/staffing-a-project
- staffplan://docs/errors
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "staffplan://docs/index",
		Name:        "docs_index",
		Title:       "staffplan docs index",
		Description: "Entry point: which doc to read for which task.",
		Content: `# staffplan docs

- conventions: date, percentage and versioning rules every tool follows
- workflows/staffing-a-project: from an empty project to a booked team
- errors: error codes and what to do about each

Planning views (detect_overlaps, get_workload, get_calendar, get_availability,
suggest_candidates, get_timeline) are read-only and computed from current
allocations on every call.
`,
	},
	{
		URI:         "staffplan://docs/conventions",
		Name:        "docs_conventions",
		Title:       "Conventions",
		Description: "Dates, ranges, percentages, deletion and versioning.",
		Content: `# Conventions

## Dates and ranges

- All dates are calendar dates in YYYY-MM-DD form. There are no times or zones.
- A range {start, end} includes both days. start must not be after end.
- An allocation from 2024-01-01 to 2024-01-01 covers exactly one day.

## Percentages

- Allocation percentage is a whole number from 1 to 100.
- One employee may hold several allocations on the same day; their sum can
  exceed 100, which is what detect_overlaps reports.

## Workload levels

| Load        | Level  |
|-------------|--------|
| 0           | none   |
| 1-50        | low    |
| 51-80       | medium |
| 81-100      | high   |
| above 100   | over   |

Week buckets start on the configured week start day (Monday unless changed).

## Deletion

- Employees, clients and allocations are soft-deleted and disappear from lists.
  get_allocation still returns a deleted allocation with is_deleted=true.
- Projects and knowledge tags are removed for good, and only when nothing
  references them (IN_USE otherwise).

## Versioning

Every allocation carries a version. update_allocation must send the version
you read; a mismatch returns CONFLICT and changes nothing.
`,
	},
	{
		URI:         "staffplan://docs/workflows/staffing-a-project",
		Name:        "docs_workflow_staffing",
		Title:       "Workflow: staffing a project",
		Description: "Step by step from project creation to overlap check.",
		Content: `# Staffing a project

1. Make sure the knowledge tags exist (list_knowledge, create_knowledge).
2. create_project with knowledge_ids for the skills it needs.
3. suggest_candidates(project_id). Candidates are ranked by how many required
   tags they cover, then by name. Each carries its free windows over the
   project dates and min_available, the lowest free percentage in that span.
4. For a shortlisted employee, get_availability over any other range shows
   the free windows and their free percentage.
5. create_allocation for each booking.
6. detect_overlaps(employee_id) to confirm nobody is booked above 100%.

Use get_calendar(month) or get_timeline to show the result to a human.
`,
	},
	{
		URI:         "staffplan://docs/errors",
		Name:        "docs_errors",
		Title:       "Error codes",
		Description: "Stable error codes returned by tools.",
		Content: `# Error codes

Tool errors come back as {code, message, recovery_hint}.

- NOT_FOUND: the id does not exist for this tenant.
- INVALID_INPUT: a field is missing or malformed (dates, emails, codes).
- INVALID_INTERVAL: start is after end, or a range bound is missing.
- INVALID_PERCENTAGE: percentage outside 1-100.
- OUTSIDE_PROJECT_WINDOW: allocation dates fall outside the project's dates.
- CONFLICT: the allocation version changed since you read it. Re-read, merge, retry.
- IN_USE: the project or knowledge tag is still referenced.
- INVALID_PARAMS: the arguments could not be decoded.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}

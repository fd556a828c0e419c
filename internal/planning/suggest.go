package planning

import "sort"

// Candidate is an employee considered for a project, with their allocations.
type Candidate struct {
	Employee    Employee
	Allocations []Allocation
}

// Suggestion is a ranked candidate.
type Suggestion struct {
	EmployeeID    string       `json:"employee_id"`
	Name          string       `json:"name"`
	MatchCount    int          `json:"match_count"`
	MatchedSkills []string     `json:"matched_skill_ids"`
	Allocations   []Allocation `json:"allocations"`
}

// RankCandidates orders the pool by the number of required skills each
// employee has, most first. Ties are ordered by name, then id. Every
// candidate is returned; capacity is left for the caller to judge from the
// attached allocations.
func RankCandidates(requiredSkillIDs []string, pool []Candidate) []Suggestion {
	required := dedupe(requiredSkillIDs)

	out := make([]Suggestion, 0, len(pool))
	for _, c := range pool {
		has := make(map[string]bool, len(c.Employee.SkillIDs))
		for _, id := range c.Employee.SkillIDs {
			has[id] = true
		}
		matched := make([]string, 0)
		for _, id := range required {
			if has[id] {
				matched = append(matched, id)
			}
		}
		out = append(out, Suggestion{
			EmployeeID:    c.Employee.ID,
			Name:          c.Employee.Name,
			MatchCount:    len(matched),
			MatchedSkills: matched,
			Allocations:   Active(c.Allocations),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchCount != out[j].MatchCount {
			return out[i].MatchCount > out[j].MatchCount
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

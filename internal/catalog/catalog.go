// Package catalog holds the academy's course content. Courses are static
// editorial data shipped with the binary; the database only ever stores
// per-user state referencing them by ID.
package catalog

import "sort"

type Module struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Quiz  *Quiz  `json:"quiz,omitempty"`
}

// Quiz is a multiple-choice answer key for a module. PassPercent is the
// minimum score (0-100) that counts as a pass.
type Quiz struct {
	AnswerKey   []int `json:"-"`
	PassPercent int   `json:"passPercent"`
}

type Course struct {
	ID      int      `json:"id"`
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Level   string   `json:"level"` // beginner, intermediate, advanced
	Modules []Module `json:"modules"`
}

var courses = map[int]Course{
	1: {
		ID:    1,
		Slug:  "defi-fundamentals",
		Title: "DeFi Fundamentals",
		Level: "beginner",
		Modules: []Module{
			{Index: 0, Title: "What is DeFi?"},
			{Index: 1, Title: "Wallets and Custody"},
			{Index: 2, Title: "Stablecoins"},
			{Index: 3, Title: "Decentralized Exchanges"},
			{Index: 4, Title: "Risks and Security", Quiz: &Quiz{AnswerKey: []int{2, 0, 1, 3}, PassPercent: 75}},
		},
	},
	2: {
		ID:    2,
		Slug:  "yield-strategies",
		Title: "Yield Strategies",
		Level: "intermediate",
		Modules: []Module{
			{Index: 0, Title: "Lending and Borrowing"},
			{Index: 1, Title: "Liquidity Pools"},
			{Index: 2, Title: "Vaults and Auto-compounding", Quiz: &Quiz{AnswerKey: []int{1, 1, 0}, PassPercent: 66}},
		},
	},
	3: {
		ID:    3,
		Slug:  "onchain-analysis",
		Title: "On-chain Analysis",
		Level: "intermediate",
		Modules: []Module{
			{Index: 0, Title: "Reading a Block Explorer"},
			{Index: 1, Title: "Token Flows"},
			{Index: 2, Title: "Protocol Metrics"},
			{Index: 3, Title: "Spotting Red Flags", Quiz: &Quiz{AnswerKey: []int{0, 3, 2, 1}, PassPercent: 75}},
		},
	},
	4: {
		ID:    4,
		Slug:  "advanced-defi",
		Title: "Advanced DeFi",
		Level: "advanced",
		Modules: []Module{
			{Index: 0, Title: "Flash Loans"},
			{Index: 1, Title: "MEV and Frontrunning"},
			{Index: 2, Title: "Derivatives and Perps"},
			{Index: 3, Title: "Governance and DAOs"},
			{Index: 4, Title: "Protocol Risk Deep Dive"},
			{Index: 5, Title: "Building a Portfolio", Quiz: &Quiz{AnswerKey: []int{2, 2, 1, 0, 3}, PassPercent: 80}},
		},
	},
}

// ByID returns the course and whether it exists.
func ByID(courseID int) (Course, bool) {
	c, ok := courses[courseID]
	return c, ok
}

// TotalModules returns the module count for a course, 0 if unknown.
func TotalModules(courseID int) int {
	c, ok := courses[courseID]
	if !ok {
		return 0
	}
	return len(c.Modules)
}

// AllCourseIDs returns every catalog course ID in ascending order.
func AllCourseIDs() []int {
	ids := make([]int, 0, len(courses))
	for id := range courses {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// All returns the full catalog ordered by ID.
func All() []Course {
	out := make([]Course, 0, len(courses))
	for _, id := range AllCourseIDs() {
		out = append(out, courses[id])
	}
	return out
}

// QuizFor returns the quiz attached to a module, if any.
func QuizFor(courseID, moduleIndex int) *Quiz {
	c, ok := courses[courseID]
	if !ok || moduleIndex < 0 || moduleIndex >= len(c.Modules) {
		return nil
	}
	return c.Modules[moduleIndex].Quiz
}

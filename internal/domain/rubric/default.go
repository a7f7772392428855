package rubric

// Built-in catalog content along the BLI 3.0 lesson features (M1-M4).
// Schools can replace it entirely via a YAML catalog file; see Load.

const defaultName = "Classroom Observation – BLI 3.0"

var defaultModules = []Module{
	{
		ID:    "M1",
		Title: "Activating learners",
		Criteria: []Criterion{
			{ID: "1.1", Text: "Competence goals are transparent to learners."},
			{ID: "1.2", Text: "Teacher models precise, language-aware instruction."},
			{ID: "1.3", Text: "Active participation of learners is encouraged."},
			{ID: "1.4", Text: "Lessons support independent learning."},
			{ID: "1.5", Text: "Reflection on learning processes is guided."},
		},
	},
	{
		ID:    "M2",
		Title: "Developing competences",
		Criteria: []Criterion{
			{ID: "2.1", Text: "Subject-specific competence growth is enabled."},
			{ID: "2.2", Text: "Media literacy is fostered through purposeful media use."},
			{ID: "2.3", Text: "Methodological competence is built and applied."},
			{ID: "2.4", Text: "Language competence is deliberately developed."},
			{ID: "2.5", Text: "Subject terminology is used functionally."},
		},
	},
	{
		ID:    "M3",
		Title: "Designing effective lessons",
		Criteria: []Criterion{
			{ID: "3.1", Text: "Lesson structure is transparent and clearly staged."},
			{ID: "3.2", Text: "Media and materials are used purposefully."},
			{ID: "3.3", Text: "Teacher moderates and steers learning processes."},
			{ID: "3.4", Text: "Heterogeneity is addressed didactically."},
			{ID: "3.5", Text: "Personalised, individualised learning is promoted."},
		},
	},
	{
		ID:    "M4",
		Title: "Fostering a supportive climate",
		Criteria: []Criterion{
			{ID: "4.1", Text: "Socially competent, appreciative interaction."},
			{ID: "4.2", Text: "Cooperative arrangements support social learning."},
			{ID: "4.3", Text: "Differentiated, criteria-guided feedback."},
			{ID: "4.4", Text: "A positive error culture is visible."},
			{ID: "4.5", Text: "The learning environment supports learning activities."},
		},
	},
}

var defaultSuggestedComments = map[int]string{
	0: "Not observable during this visit. Possible cause: phase or situation dependent.",
	1: "First approaches are recognisable. Focusing on clear routines and transparency could increase impact.",
	2: "Fundamentally in place. Strengthen further through consistency, examples and visualisation.",
	3: "Largely well implemented. Impact can be deepened through further learner activation.",
	4: "Very convincingly implemented; serves as a good-practice example.",
}

var defaultRatingLabels = map[int]string{
	0: "0 – not observable",
	1: "1 – emerging",
	2: "2 – basic",
	3: "3 – well implemented",
	4: "4 – very strong",
}

// Default returns the built-in BLI 3.0 catalog.
func Default() *Catalog {
	c, err := New(defaultName, defaultModules, defaultSuggestedComments, defaultRatingLabels)
	if err != nil {
		// The built-in data is validated by tests; this cannot happen at runtime.
		panic(err)
	}
	return c
}

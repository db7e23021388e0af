package extract

// skillCategory groups related taxonomy terms. Category and term order is
// fixed so extracted skills come out in a stable order.
type skillCategory struct {
	Name   string
	Skills []string
}

var skillTaxonomy = []skillCategory{
	{
		Name: "programming",
		Skills: []string{
			"python", "java", "javascript", "c++", "c#", "php", "ruby", "go", "rust",
			"swift", "kotlin", "scala", "r", "matlab", "sql", "html", "css", "typescript",
		},
	},
	{
		Name: "frameworks",
		Skills: []string{
			"react", "angular", "vue", "django", "flask", "spring", "express",
			"node.js", "bootstrap", "jquery", "laravel", "rails", "asp.net",
		},
	},
	{
		Name: "databases",
		Skills: []string{
			"mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle",
			"cassandra", "elasticsearch", "dynamodb",
		},
	},
	{
		Name: "tools",
		Skills: []string{
			"git", "docker", "kubernetes", "jenkins", "aws", "azure", "gcp",
			"terraform", "ansible", "jira", "confluence", "slack",
		},
	},
	{
		Name: "soft_skills",
		Skills: []string{
			"leadership", "communication", "teamwork", "problem-solving",
			"analytical", "creative", "adaptable", "organized", "detail-oriented",
		},
	},
}

// TaxonomySize returns the total number of known skill terms.
func TaxonomySize() int {
	n := 0
	for _, cat := range skillTaxonomy {
		n += len(cat.Skills)
	}
	return n
}

package models

// CustomCompany is the catalog entry that asks for a free-text company name.
const CustomCompany = "Custom Company"

var Companies = []string{
	"Google", "Microsoft", "Amazon", "Apple", "Facebook/Meta", "Netflix", "Tesla",
	"OpenAI", "Anthropic", "NVIDIA", "Intel", "IBM", "Oracle", "Salesforce",
	"Adobe", "Uber", "Airbnb", "Spotify", "Twitter/X", "LinkedIn", "Goldman Sachs",
	CustomCompany,
}

var JobRoles = []string{
	"Software Engineer", "Senior Software Engineer", "Staff Software Engineer",
	"Frontend Developer", "Backend Developer", "Full Stack Developer",
	"Data Scientist", "Data Analyst", "Data Engineer", "ML Engineer",
	"AI Research Scientist", "DevOps Engineer", "Cloud Architect", "Security Engineer",
	"Product Manager", "Technical Product Manager", "Program Manager",
	"UX Designer", "UI Designer", "Product Designer",
}

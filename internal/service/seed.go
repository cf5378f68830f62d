package service

import (
	"regexp"
	"strings"

	"github.com/projectforgeai/forge-server/internal/domain"
)

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a title into a URL-safe identifier base.
func slugify(s string) string {
	s = slugNonAlnum.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// DefaultProjects is the starter set persisted for users with no projects.
func DefaultProjects() []domain.Project {
	return []domain.Project{
		{
			ID:          "build-a-personal-portfolio-website",
			Title:       "Build a Personal Portfolio Website",
			Description: "Create a stunning personal portfolio to showcase your skills and projects using React and Tailwind CSS.",
			Image:       "https://placehold.co/600x400/7c3aed/ffffff.png",
			DataAIHint:  "portfolio website",
			Tags:        []string{"React", "Tailwind CSS", "Easy"},
			Skills:      []string{"Component Design", "Responsive Layout", "Deployment"},
			Steps: []domain.TutorialStep{
				{
					ID:          "step-1",
					Title:       "Setup Your Development Environment",
					Description: "Install the tooling and scaffold a new application before writing any code.",
					SubTasks: []domain.SubTask{
						{ID: "subtask-1-1", Title: "Install Node.js and npm", Description: "Install the JavaScript runtime and package manager the project is built on."},
						{ID: "subtask-1-2", Title: "Scaffold the Application", Description: "Create a new Next.js application with TypeScript and Tailwind CSS enabled."},
					},
				},
				{
					ID:          "step-2",
					Title:       "Create the Header and Footer",
					Description: "Build the shared chrome that appears on every page of the site.",
					SubTasks: []domain.SubTask{
						{ID: "subtask-2-1", Title: "Create the Header Component", Description: "Add a navigation bar with links to the main sections of the site."},
						{ID: "subtask-2-2", Title: "Create the Footer Component", Description: "Add a footer with contact information and social links."},
					},
				},
				{
					ID:          "step-3",
					Title:       "Design the Hero Section",
					Description: "Introduce yourself to visitors with a prominent hero section on the landing page.",
					SubTasks: []domain.SubTask{
						{ID: "subtask-3-1", Title: "Build the Hero Layout", Description: "Lay out a headline, tagline, and call-to-action in the hero section."},
					},
				},
				{
					ID:          "step-4",
					Title:       "Showcase Your Projects",
					Description: "List your work with reusable project cards.",
					SubTasks: []domain.SubTask{
						{ID: "subtask-4-1", Title: "Create the ProjectCard Component", Description: "Build a card component that displays a project's title and description."},
						{ID: "subtask-4-2", Title: "Render the Projects Grid", Description: "Display a responsive grid of project cards on the main page."},
					},
				},
				{
					ID:          "step-5",
					Title:       "Deploy to the Web",
					Description: "Publish the finished portfolio with a hosting service.",
					SubTasks: []domain.SubTask{
						{ID: "subtask-5-1", Title: "Push the Code to GitHub", Description: "Initialize a repository and push the project to GitHub."},
						{ID: "subtask-5-2", Title: "Deploy with Vercel", Description: "Connect the repository to Vercel and deploy the site."},
					},
				},
			},
		},
		{
			ID:          "create-a-weather-app",
			Title:       "Create a Weather App",
			Description: "A hands-on project to build a weather application that fetches and displays real-time weather data from an API.",
			Image:       "https://placehold.co/600x400/34d399/115e59.png",
			DataAIHint:  "weather app",
			Tags:        []string{"JavaScript", "APIs", "Easy"},
			Skills:      []string{"API Fetching", "Async/Await", "DOM Updates"},
			Steps: []domain.TutorialStep{
				{
					ID:          "step-1",
					Title:       "Get API Access",
					Description: "Register with a weather data provider and obtain credentials.",
					SubTasks: []domain.SubTask{
						{ID: "subtask-1-1", Title: "Sign Up for an API Key", Description: "Create a free OpenWeatherMap account and copy your API key."},
					},
				},
				{
					ID:          "step-2",
					Title:       "Design the UI",
					Description: "Build the search form and the results display area.",
					SubTasks: []domain.SubTask{
						{ID: "subtask-2-1", Title: "Create the City Search Form", Description: "Add an input for the city name and a submit button."},
						{ID: "subtask-2-2", Title: "Create the Results Panel", Description: "Add a panel that will display temperature and conditions once loaded."},
					},
				},
				{
					ID:          "step-3",
					Title:       "Fetch and Display Weather Data",
					Description: "Wire the form to the API and render the response.",
					SubTasks: []domain.SubTask{
						{ID: "subtask-3-1", Title: "Implement the API Call", Description: "Fetch current weather for the entered city and handle errors."},
						{ID: "subtask-3-2", Title: "Render the Weather Data", Description: "Show temperature, conditions, and an icon from the API response."},
					},
				},
			},
		},
	}
}

// DefaultQuestions is the fallback interview question bank, used when the
// questions table is empty and no bulk load has run.
func DefaultQuestions() []domain.InterviewQuestion {
	return []domain.InterviewQuestion{
		{ID: "big-o-notation", Question: "Discuss the significance of 'Big O' notation in software development.", Category: domain.QuestionCategoryTechnical, Type: domain.QuestionTypeGeneral, Difficulty: domain.DifficultyEasy},
		{ID: "above-and-beyond", Question: "Share a time you went above and beyond for a project.", Category: domain.QuestionCategoryBehavioral, Type: domain.QuestionTypeGeneral, Difficulty: domain.DifficultyEasy},
		{ID: "rest-vs-graphql", Question: "Compare and contrast REST and GraphQL.", Category: domain.QuestionCategoryTechnical, Type: domain.QuestionTypeBackend, Difficulty: domain.DifficultyMedium},
		{ID: "handling-conflict", Question: "Describe a situation where you had a conflict with a coworker and how you handled it.", Category: domain.QuestionCategoryBehavioral, Type: domain.QuestionTypeGeneral, Difficulty: domain.DifficultyMedium},
		{ID: "database-indexing", Question: "Explain database indexing and why it's important for performance.", Category: domain.QuestionCategoryTechnical, Type: domain.QuestionTypeBackend, Difficulty: domain.DifficultyHard},
		{ID: "react-virtual-dom", Question: "What is the Virtual DOM and how does React use it to improve performance?", Category: domain.QuestionCategoryTechnical, Type: domain.QuestionTypeFrontend, Difficulty: domain.DifficultyMedium},
		{ID: "handling-failure", Question: "Tell me about a time you failed. What did you learn from it?", Category: domain.QuestionCategoryBehavioral, Type: domain.QuestionTypeGeneral, Difficulty: domain.DifficultyMedium},
		{ID: "system-design-twitter", Question: "How would you design a system like Twitter's news feed?", Category: domain.QuestionCategoryTechnical, Type: domain.QuestionTypeFullStack, Difficulty: domain.DifficultyHard},
	}
}

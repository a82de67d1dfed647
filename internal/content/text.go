package content

var (
	Brand = "Boredoom"

	Tagline = `"Jack of all trades, master of none, but oftentimes better than master of one."`

	// AboutMe is Markdown; see RenderMarkdown.
	AboutMe = `I’m the kind of person who dives into everything. From sketching on
paper to playing guitar, dribbling on the basketball court to writing
code late at night, I love trying new things. Whether it’s sports,
art, music, or tech, I enjoy the thrill of learning and figuring
things out.`

	ContactBlurb = "Feel free to reach out through any of the platforms below."
)

var Projects = []Project{
	{
		Title:       "Smart Cooking AI (BIM 6th Sem)",
		Description: "AI app that scans ingredients and suggests recipes with nutrition info.",
		Highlights: []string{
			"Ingredient recognition using YOLO",
			"Offline-capable recipe generation",
			"Nutritional breakdown & calorie summary",
			"Built for low-resource users",
		},
		Tech: []string{"React Native (Expo)", "Firebase", "YOLO", "TypeScript"},
	},
	{
		Title:       "Smart Rooftop Auto-Irrigation (IoT)",
		Description: "ESP32-based irrigation system that automates rooftop farming with smart soil data.",
		Highlights: []string{
			"Real-time soil moisture telemetry",
			"Auto pump scheduling via Firebase",
			"Manual override and dashboard alerts",
			"Eco-efficient design for small rooftops",
		},
		Tech: []string{"ESP32", "Firebase", "React", "Tailwind"},
	},
	{
		Title:       "Flight Tracker Mini",
		Description: "Lightweight web app to view live flight data with small route maps.",
		Highlights: []string{
			"Search flights by number or route",
			"Mini map route visualization",
			"ETA & aircraft info display",
			"Smooth interface with real-time data",
		},
		Tech: []string{"React", "Tailwind", "Mapbox"},
	},
}

var Experiences = []string{
	"Joint Secretary @ IT Club, Oxford College (2024–2025)",
	"Built Smart Cooking AI App (BIM 6th Sem Project)",
}

var LanguageSkills = []Skill{
	{Name: "JavaScript / TypeScript", Level: "Comfortable"},
	{Name: "Python", Level: "Comfortable"},
	{Name: "Java", Level: "Familiar"},
	{Name: "C", Level: "Familiar"},
}

var ThingsILike = []string{
	"Sketching",
	"Guitar",
	"Basketball",
	"Late-night coding",
}

var ContactLinks = []ExternalLink{
	{Label: "GitHub", URL: "https://github.com/Boredoom17"},
	{Label: "LinkedIn", URL: "https://www.linkedin.com/in/aadarsha-chhetri-112580271/"},
}

var DefaultAvatar = Avatar{
	Src:         "/front.jpg",
	Alt:         "Boredoom avatar",
	Placeholder: "B",
}

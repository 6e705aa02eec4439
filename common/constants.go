package common

const (
	// AppName is the name of the application
	AppName = "coast-crawler"

	// RobotsPath is the well-known path of the per-host permission policy
	RobotsPath = "/robots.txt"
)

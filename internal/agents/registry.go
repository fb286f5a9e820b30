package agents

// AgentInfo describes an agent for the registry.
type AgentInfo struct {
	Role        Role     `json:"role"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tasks       []string `json:"tasks"`
}

// Registry contains metadata for the pipeline agents, in pipeline order.
// The agents CLI command renders it.
var Registry = []AgentInfo{
	{
		Role:        RoleDesigner,
		Name:        "Designer",
		Description: "Transforms your requirements into detailed game design documents",
		Tasks: []string{
			"Analyzes the game request",
			"Designs mechanics, controls, and difficulty",
			"Defines win and lose conditions",
			"Reworks the design when reviews demand it",
		},
	},
	{
		Role:        RoleDeveloper,
		Name:        "Developer",
		Description: "Writes complete, working browser game code",
		Tasks: []string{
			"Implements every mechanic from the design",
			"Builds self-contained HTML5/JavaScript games",
			"Fixes reported bugs without regressing earlier fixes",
			"Keeps the game playable without a build step",
		},
	},
	{
		Role:        RolePlayer,
		Name:        "Player",
		Description: "Tests games by simulating real play sessions",
		Tasks: []string{
			"Traces the code the way an engine would run it",
			"Simulates cautious, aggressive, and rule-breaking players",
			"Reports bugs and edge cases",
			"Scores how fun the game actually is",
		},
	},
	{
		Role:        RoleReviewer,
		Name:        "Reviewer",
		Description: "Reviews each iteration and decides on delivery",
		Tasks: []string{
			"Scores gameplay quality against the design",
			"Separates must-fix from should-fix issues",
			"Routes problems to the designer or the developer",
			"Calls the game ready when it clears the bar",
		},
	},
}

// GetAgentByRole returns agent info by role, or nil if not found.
func GetAgentByRole(role Role) *AgentInfo {
	for i := range Registry {
		if Registry[i].Role == role {
			return &Registry[i]
		}
	}
	return nil
}

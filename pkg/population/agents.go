package population

import (
	"math"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/daynight"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
)

// Rand supplies the randomness for agent placement. *rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
}

// AgentType classifies what a simulated agent is doing.
type AgentType string

const (
	Resident AgentType = "resident"
	Worker   AgentType = "worker"
	Visitor  AgentType = "visitor"
)

// Agent is a point on the grid used to visualize foot traffic.
type Agent struct {
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Type AgentType `json:"type"`
}

// Agents samples up to maxAgents positions for visualization. The
// time of day shifts agents between homes, workplaces, and leisure
// cells. Categories with no matching cells contribute no agents.
func Agents(g *grid.Grid, tod daynight.TimeOfDay, maxAgents int, r Rand) []Agent {
	if g == nil || maxAgents <= 0 || r == nil {
		return nil
	}

	var homes, work, leisure []*grid.Cell
	for _, cell := range g.Buildings() {
		switch cell.Building.Category {
		case catalog.CategoryResidential:
			homes = append(homes, cell)
		case catalog.CategoryCommercial, catalog.CategoryIndustrial:
			work = append(work, cell)
		default:
			leisure = append(leisure, cell)
		}
	}

	w := daynight.WeightsFor(tod)
	var agents []Agent
	agents = appendAgents(agents, homes, Resident, round(float64(maxAgents)*w.Residential), r)
	agents = appendAgents(agents, work, Worker, round(float64(maxAgents)*w.Work), r)
	agents = appendAgents(agents, leisure, Visitor, round(float64(maxAgents)*w.Leisure), r)
	return agents
}

func appendAgents(agents []Agent, cells []*grid.Cell, typ AgentType, n int, r Rand) []Agent {
	if len(cells) == 0 {
		return agents
	}
	for i := 0; i < n; i++ {
		cell := cells[r.Intn(len(cells))]
		agents = append(agents, Agent{X: cell.X, Y: cell.Y, Type: typ})
	}
	return agents
}

func round(v float64) int {
	return int(math.Round(v))
}

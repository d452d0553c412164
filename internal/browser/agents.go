package browser

import "sync"

// agentPool rotates user agent strings across sessions, sequentially.
type agentPool struct {
	agents []string
	mu     sync.Mutex
	index  int
}

func defaultAgents() *agentPool {
	return &agentPool{
		agents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/107.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/107.0.0.0 Safari/537.36",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/107.0.0.0 Safari/537.36",
		},
	}
}

func (p *agentPool) next() string {
	if len(p.agents) == 0 {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	agent := p.agents[p.index]
	p.index = (p.index + 1) % len(p.agents)
	return agent
}

package pricing

const (
	statSuccess = "success"
	statFailure = "failure"
	statCache   = "cache"
)

func (c *Client) record(region, statType string) {
	c.statsLock.Lock()
	defer c.statsLock.Unlock()

	s, ok := c.stats[region]
	if !ok {
		s = &Stat{}
		c.stats[region] = s
	}

	switch statType {
	case statSuccess:
		s.Success++
	case statFailure:
		s.Failure++
	case statCache:
		s.Cache++
	}
}

// Stats returns a copy of the per-region lookup counters
func (c *Client) Stats() map[string]Stat {
	c.statsLock.RLock()
	defer c.statsLock.RUnlock()

	statsCopy := make(map[string]Stat, len(c.stats))
	for region, s := range c.stats {
		statsCopy[region] = *s
	}
	return statsCopy
}

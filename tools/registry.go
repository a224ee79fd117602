package tools

// Registry returns all tool definitions wired for the agent
func Registry() []ToolDefinition {
	return []ToolDefinition{AnalyzeSalesDefinition, InventoryOptimizationDefinition, PricingStrategyDefinition}
}

// Lookup returns the registered tool with the given name.
func Lookup(name string) (ToolDefinition, bool) {
	for _, d := range Registry() {
		if d.Name == name {
			return d, true
		}
	}
	return ToolDefinition{}, false
}

package mcp

// ToolDefinition describes one tool exposed over MCP.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

func object(required []string, props map[string]any) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func date(desc string) map[string]any {
	return map[string]any{"type": "string", "format": "date", "description": desc}
}

func integer(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

func boolean(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func enum(desc string, values ...string) map[string]any {
	return map[string]any{"type": "string", "enum": values, "description": desc}
}

func stringList(desc string) map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": desc}
}

func idOnly(desc string) map[string]any {
	return object([]string{"id"}, map[string]any{"id": str(desc)})
}

func page(props map[string]any) map[string]any {
	props["limit"] = integer("Maximum results (default 50, max 500)")
	props["offset"] = integer("Number of results to skip")
	return props
}

func employeeProps(withID bool) map[string]any {
	props := map[string]any{
		"given_name":     str("Given name"),
		"surname":        str("Surname"),
		"company_email":  str("Company email"),
		"personal_email": str("Personal email"),
		"citizenship":    str("Citizenship"),
		"tax_residence":  str("Tax residence"),
		"location":       str("Work location"),
		"mobile_number":  str("Mobile number"),
		"home_address":   str("Home address"),
		"birth_date":     date("Birth date (YYYY-MM-DD)"),
		"is_active":      boolean("Whether the employee is active (default true)"),
		"knowledge_ids":  stringList("Knowledge tags; replaces the full set"),
	}
	if withID {
		props["id"] = str("Employee ID")
	}
	return props
}

func clientProps(withID bool) map[string]any {
	props := map[string]any{
		"name":         str("Client name"),
		"client_code":  str("Short client code, unique per tenant"),
		"address":      str("Street address"),
		"postal_code":  str("Postal code"),
		"country_code": str("ISO 3166-1 alpha-2 country code"),
		"is_active":    boolean("Whether the client is active (default true)"),
	}
	if withID {
		props["id"] = str("Client ID")
	}
	return props
}

func projectProps(withID bool) map[string]any {
	props := map[string]any{
		"code":                     str("Project code"),
		"name":                     str("Project name"),
		"client_id":                str("Owning client ID"),
		"currency":                 str("ISO 4217 currency code"),
		"contract_owner":           str("Contract owner"),
		"start_date":               date("First day of the project (inclusive)"),
		"end_date":                 date("Last day of the project (inclusive)"),
		"deal_status":              enum("Sales state", "PENDING", "WON", "LOST"),
		"billable":                 boolean("Whether time is billable"),
		"engagement_manager_email": str("Engagement manager email"),
		"note":                     str("Free-form note"),
		"knowledge_ids":            stringList("Required knowledge; replaces the full set"),
	}
	if withID {
		props["id"] = str("Project ID")
	}
	return props
}

func rangeProps(props map[string]any) map[string]any {
	props["start"] = date("Range start (inclusive, YYYY-MM-DD)")
	props["end"] = date("Range end (inclusive, YYYY-MM-DD)")
	return props
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Employees
		{
			Name:        "create_employee",
			Description: "Create an employee",
			InputSchema: object([]string{"given_name", "company_email", "personal_email"}, employeeProps(false)),
		},
		{
			Name:        "get_employee",
			Description: "Get an employee with knowledge tags",
			InputSchema: idOnly("Employee ID"),
		},
		{
			Name:        "update_employee",
			Description: "Update an employee. Omitted fields are left unchanged",
			InputSchema: object([]string{"id"}, employeeProps(true)),
		},
		{
			Name:        "delete_employee",
			Description: "Soft-delete an employee",
			InputSchema: idOnly("Employee ID"),
		},
		{
			Name:        "list_employees",
			Description: "List employees ordered by name",
			InputSchema: object(nil, page(map[string]any{
				"active_only": boolean("Only active employees"),
			})),
		},
		{
			Name:        "search_employees",
			Description: "Full-text search over employee names, emails and locations",
			InputSchema: object([]string{"query"}, map[string]any{
				"query": str("Search text"),
				"limit": integer("Maximum results"),
			}),
		},

		// Clients
		{
			Name:        "create_client",
			Description: "Create a client",
			InputSchema: object([]string{"name", "client_code"}, clientProps(false)),
		},
		{
			Name:        "get_client",
			Description: "Get a client",
			InputSchema: idOnly("Client ID"),
		},
		{
			Name:        "update_client",
			Description: "Update a client. Omitted fields are left unchanged",
			InputSchema: object([]string{"id"}, clientProps(true)),
		},
		{
			Name:        "delete_client",
			Description: "Soft-delete a client",
			InputSchema: idOnly("Client ID"),
		},
		{
			Name:        "list_clients",
			Description: "List clients ordered by name",
			InputSchema: object(nil, page(map[string]any{
				"active_only": boolean("Only active clients"),
			})),
		},

		// Projects
		{
			Name:        "create_project",
			Description: "Create a project for a client",
			InputSchema: object([]string{"code", "name", "client_id", "contract_owner", "engagement_manager_email"}, projectProps(false)),
		},
		{
			Name:        "get_project",
			Description: "Get a project with client name and required knowledge",
			InputSchema: idOnly("Project ID"),
		},
		{
			Name:        "update_project",
			Description: "Update a project. Omitted fields are left unchanged",
			InputSchema: object([]string{"id"}, projectProps(true)),
		},
		{
			Name:        "delete_project",
			Description: "Delete a project. Fails with IN_USE while allocations reference it",
			InputSchema: idOnly("Project ID"),
		},
		{
			Name:        "list_projects",
			Description: "List projects, optionally filtered by client or deal status",
			InputSchema: object(nil, page(map[string]any{
				"client_id":   str("Filter by client"),
				"deal_status": enum("Filter by deal status", "PENDING", "WON", "LOST"),
			})),
		},
		{
			Name:        "list_client_projects",
			Description: "List the projects of one client",
			InputSchema: object([]string{"client_id"}, page(map[string]any{
				"client_id": str("Client ID"),
			})),
		},

		// Knowledge
		{
			Name:        "create_knowledge",
			Description: "Create a knowledge tag",
			InputSchema: object([]string{"name"}, map[string]any{
				"name":        str("Tag name, unique per tenant"),
				"description": str("Description"),
			}),
		},
		{
			Name:        "list_knowledge",
			Description: "List all knowledge tags",
			InputSchema: object(nil, map[string]any{}),
		},
		{
			Name:        "delete_knowledge",
			Description: "Delete a knowledge tag. Fails with IN_USE while employees or projects reference it",
			InputSchema: idOnly("Knowledge ID"),
		},

		// Allocations
		{
			Name:        "create_allocation",
			Description: "Allocate an employee to a project for an inclusive date range",
			InputSchema: object([]string{"employee_id", "project_id", "start_date", "end_date", "percentage"}, map[string]any{
				"employee_id": str("Employee ID"),
				"project_id":  str("Project ID"),
				"start_date":  date("First allocated day (inclusive)"),
				"end_date":    date("Last allocated day (inclusive)"),
				"percentage":  integer("Share of a working day, 1 to 100"),
			}),
		},
		{
			Name:        "get_allocation",
			Description: "Get an allocation, including soft-deleted ones",
			InputSchema: idOnly("Allocation ID"),
		},
		{
			Name:        "update_allocation",
			Description: "Update an allocation. The version must match the stored version or CONFLICT is returned",
			InputSchema: object([]string{"id", "version"}, map[string]any{
				"id":          str("Allocation ID"),
				"version":     integer("Version read from the last get or list"),
				"employee_id": str("Employee ID"),
				"project_id":  str("Project ID"),
				"start_date":  date("First allocated day (inclusive)"),
				"end_date":    date("Last allocated day (inclusive)"),
				"percentage":  integer("Share of a working day, 1 to 100"),
			}),
		},
		{
			Name:        "delete_allocation",
			Description: "Soft-delete an allocation",
			InputSchema: idOnly("Allocation ID"),
		},
		{
			Name:        "list_allocations",
			Description: "List allocations, newest first, filtered by employee, project or date range",
			InputSchema: object(nil, page(rangeProps(map[string]any{
				"employee_id":     str("Filter by employee"),
				"project_id":      str("Filter by project"),
				"include_deleted": boolean("Include soft-deleted allocations"),
			}))),
		},

		// Planning views
		{
			Name:        "detect_overlaps",
			Description: "Find windows where an employee's summed allocation exceeds the threshold",
			InputSchema: object(nil, rangeProps(map[string]any{
				"employee_id": str("Only this employee"),
				"threshold":   integer("Percentage above which a window is reported (default 100)"),
			})),
		},
		{
			Name:        "get_workload",
			Description: "Workload heatmap per employee, bucketed by day or week",
			InputSchema: object([]string{"start", "end"}, rangeProps(map[string]any{
				"granularity":  enum("Bucket size (default week)", "day", "week"),
				"employee_ids": stringList("Only these employees"),
			})),
		},
		{
			Name:        "get_calendar",
			Description: "Month calendar of allocations per day",
			InputSchema: object([]string{"month"}, map[string]any{
				"month":       str("Month as YYYY-MM"),
				"employee_id": str("Only this employee"),
				"project_id":  str("Only this project"),
			}),
		},
		{
			Name:        "get_availability",
			Description: "Free capacity windows for one employee",
			InputSchema: object([]string{"employee_id", "start", "end"}, rangeProps(map[string]any{
				"employee_id": str("Employee ID"),
			})),
		},
		{
			Name:        "suggest_candidates",
			Description: "Rank active employees for a project by matching knowledge, with their free capacity",
			InputSchema: object([]string{"project_id"}, rangeProps(map[string]any{
				"project_id": str("Project ID"),
			})),
		},
		{
			Name:        "get_timeline",
			Description: "Timeline of allocation bars, one row per allocation",
			InputSchema: object(nil, rangeProps(map[string]any{
				"employee_id": str("Only this employee"),
			})),
		},

		// Activity
		{
			Name:        "get_recent_activity",
			Description: "Recent change log entries, newest first",
			InputSchema: object(nil, page(map[string]any{
				"entity_type": enum("Filter by entity type", "employee", "client", "project", "knowledge", "allocation"),
				"entity_id":   str("Filter by entity ID"),
				"type":        enum("Filter by activity type", "created", "updated", "deleted", "conflict_detected"),
			})),
		},
	}
}

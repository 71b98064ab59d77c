package client

// RequestDecoratorFunc adds optional parameters to a request. Parameters end up in the
// query string of GET requests and in the json body of all other requests.
type RequestDecoratorFunc func(params map[string]any)

// WithTicket overrides the ticket stored in the client for a single request
func WithTicket(ticket string) RequestDecoratorFunc {
	return func(params map[string]any) {
		params["ticket"] = ticket
	}
}

func Reopen(reopen bool) RequestDecoratorFunc {
	return func(params map[string]any) {
		params["reopen"] = reopen
	}
}

func Sort(sort string) RequestDecoratorFunc {
	return func(params map[string]any) {
		params["sort"] = sort
	}
}

func Databases(databases string) RequestDecoratorFunc {
	return func(params map[string]any) {
		params["databases"] = databases
	}
}

func From(from int) RequestDecoratorFunc {
	return func(params map[string]any) {
		params["from"] = from
	}
}

func Top(top int) RequestDecoratorFunc {
	return func(params map[string]any) {
		params["top"] = top
	}
}

func Limit(limit int) RequestDecoratorFunc {
	return func(params map[string]any) {
		params["limit"] = limit
	}
}

func Trace(trace bool) RequestDecoratorFunc {
	return func(params map[string]any) {
		params["trace"] = trace
	}
}

func PrepareEvents(prepare bool) RequestDecoratorFunc {
	return func(params map[string]any) {
		params["prepare_events"] = prepare
	}
}

func AssignedSubsystems(subsystems uint8) RequestDecoratorFunc {
	return func(params map[string]any) {
		params["assigned_subsystems"] = subsystems
	}
}

func EventID(id string) RequestDecoratorFunc {
	return func(params map[string]any) {
		if id != "" {
			params["event_id"] = id
		}
	}
}

func TransactionID(id string) RequestDecoratorFunc {
	return func(params map[string]any) {
		if id != "" {
			params["transaction_id"] = id
		}
	}
}

// Package engine serves an ordered list of actions over plain HTTP/1.x.
//
// # Architecture
//
//	┌───────────────────────────────────────────────────────────┐
//	│                          Server                            │
//	│                                                            │
//	│   one listening socket (SO_REUSEADDR, bound in NewServer)  │
//	│          │           │                 │                   │
//	│      worker 0     worker 1   ...   worker N-1              │
//	│   accept → dispatch → write → accept → ...                 │
//	│          │                                                 │
//	│   ┌──────▼──────────────────────────────────────────┐     │
//	│   │ Dispatcher                                      │     │
//	│   │ read request → ParseTarget → first Match wins → │     │
//	│   │ Handle → classify error → serialize response    │     │
//	│   └─────────────────────────────────────────────────┘     │
//	└───────────────────────────────────────────────────────────┘
//
// Every worker accepts on the same listener and serves one connection at a
// time, so at most N requests are in flight. The operating system decides
// which waiting worker receives the next connection.
//
// # Basic Usage
//
//	srv, err := engine.NewServer(8080, []action.Action{
//	    action.NewJSONGet("/status", func(url.Values) (any, error) {
//	        return map[string]string{"status": "ok"}, nil
//	    }),
//	    action.NewStaticResources("/static", "./web"),
//	    action.NewRedirect("/", "/static/index.html"),
//	}, engine.WithThreadCount(5))
//	if err != nil {
//	    return err
//	}
//
//	go func() {
//	    <-ctx.Done()
//	    _ = srv.Stop()
//	}()
//	return srv.Start(true) // returns once Stop has been called
//
// # Error Handling
//
// A *action.ValidationError from a handler is answered with 400, any other
// error or panic with 500, and a request no action matches with 404. All
// error bodies are the JSON envelope {"error": "<message>"}. None of them
// stop the worker.
//
// # Shutdown
//
// Stop marks every worker as shutting down, closes the listener to unblock
// them, waits for them to return and then releases Start(true). An accept
// error seen by a worker that was not marked is fatal to that worker and is
// returned from Stop.
package engine

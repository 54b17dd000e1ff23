/*
Package runner implements the interactive browsing loop over an Arbor engine.

It acts as the bridge between the outline engine and the outside world.
The runner renders frames of the flattened outline, reads line commands,
applies them to the session state, and persists the session after every
mutation. Kinetic scrolling is driven by a ticker inside the fling command,
so glides animate at a fixed frame interval until the motion model stops.

# Key Components

  - Runner: The main orchestrator holding the engine, session, and handler.
  - IOHandler: Decouples how frames are presented and commands are read (CLI, JSON, etc).
  - TextHandler: A standard implementation for interactive CLI usage.
  - ParseCommand: The line grammar (bare words search, known verbs navigate).

# Usage

	r := runner.NewRunner(
		runner.WithEngine(eng),
		runner.WithSessionID("user-1"),
		runner.WithHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner

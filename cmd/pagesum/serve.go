package main

import (
	pagehttp "github.com/fwojciec/pagesum/http"
)

// Run executes the serve command. It blocks until deps.Ctx is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := pagehttp.NewServer(deps.Service, deps.Logger)
	s.Addr = c.Addr
	return s.ListenAndServe(deps.Ctx)
}

package github

import adaptertracker "github.com/vibecheck-dev/vibecheck/internal/adapter/tracker"

var _ adaptertracker.Tracker = (*Client)(nil)

// Package service implements the application logic of c4model.
//
// WorkspaceService coordinates the definition loader, the snapshot codecs and
// the repository: it imports definition files, persists workspaces, interns
// container instances on request and exports snapshots.
//
// # Event System
//
// The service publishes events on an EventBus whenever stored state changes
// (workspace imported or deleted, instance created). Subscribers receive
// events on buffered channels; a slow subscriber misses events rather than
// blocking the publisher.
package service

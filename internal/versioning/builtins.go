package versioning

// DefaultRegistry returns a Registry pre-populated with every migration
// this engine ships. cmd/personengine wires it into the eventstore codec's
// read path.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerPersonCreatedV1ToV2(r)
	return r
}

// registerPersonCreatedV1ToV2 is the reference migration from spec.md §6:
// PersonCreated 1.0 payloads carried a top-level created_at field and no
// metadata object. 2.0 moves created_at into metadata and adds a default
// correlation_id so every payload has one, regardless of vintage.
func registerPersonCreatedV1ToV2(r *Registry) {
	r.Register("PersonCreated", "1.0", "2.0", func(payload map[string]interface{}) (map[string]interface{}, error) {
		migrated := make(map[string]interface{}, len(payload)+1)
		for k, v := range payload {
			migrated[k] = v
		}

		createdAt, hadCreatedAt := migrated["created_at"]
		delete(migrated, "created_at")

		metadata, _ := migrated["metadata"].(map[string]interface{})
		if metadata == nil {
			metadata = make(map[string]interface{})
		} else {
			copied := make(map[string]interface{}, len(metadata))
			for k, v := range metadata {
				copied[k] = v
			}
			metadata = copied
		}
		if hadCreatedAt {
			metadata["created_at"] = createdAt
		}
		if _, ok := metadata["correlation_id"]; !ok {
			metadata["correlation_id"] = ""
		}
		migrated["metadata"] = metadata

		return migrated, nil
	})
}

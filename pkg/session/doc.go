// Package session provides the per-client mutable state that backs upload
// ownership tracking.
//
// A Session is a token-identified mapping with a lifetime. The upload engine
// records which public paths a session owns inside Session.Data; the Store
// implementations (in-memory and Redis) persist sessions across requests.
// Persistence is entirely the caller's concern - the engine mutates the
// session it is handed and never talks to a Store itself.
//
// Example:
//
//	store := session.NewMemoryStore(time.Minute)
//	defer store.Close()
//
//	sess := session.New("client-token", 24*time.Hour)
//	if err := store.Create(ctx, sess); err != nil {
//	    return err
//	}
//
//	// ... hand sess to the upload engine, then persist its mutations:
//	if err := store.Update(ctx, sess); err != nil {
//	    return err
//	}
package session

// Package realtime implements the hub that pushes task and notification
// state changes to connected browser sessions over websockets.
//
// Every connected session receives global events (task created/updated/
// deleted). A session that has announced its user identity via the
// joinUserRoom message additionally receives events targeted at that user's
// room. Room membership is in-memory only: it is a cache of who is listening
// right now, rebuilt from zero on every restart.
//
// Delivery is fire-and-forget. A session that cannot keep up is closed and
// dropped; there is no buffering of missed events and no redelivery. Clients
// recover by refetching on reconnect.
package realtime

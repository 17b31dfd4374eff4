// Package roster models the team's transactions archive and the set of
// transactions that have already been posted.
//
// A transaction is identified by its date and a normalized prefix of its
// text. The posted set keeps insertion order so the oldest IDs are dropped
// first once it grows past MaxPostedIDs.
package roster

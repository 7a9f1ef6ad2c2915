/*
Package builder constructs the directed mention graph from a stream of posts.
It is the bridge between the ingestion collaborator (which yields typed
post.Post records) and the rank engine (which reads a finished *graph.Graph).

The construction is a single pass over the posts:

 1. Validation: a post without an author cannot be attributed to a vertex. It
    is skipped and counted in Stats.Skipped; the build continues.

 2. Vertex Registration: the author becomes a vertex even when the post
    mentions nobody, so silent authors still take part in the ranking.

 3. Edge Linking: every mentioned handle other than the author becomes a
    vertex and gains an in-edge from the author. Self mentions and empty
    handles are ignored and counted. Repeated mentions collapse into a single
    edge; the graph package enforces both rules.

The builder has no side effects beyond the graph it returns.
*/
package builder

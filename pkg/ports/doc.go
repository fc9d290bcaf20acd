/*
Package ports defines the driven ports (interfaces) used by the reqio scripts.

These interfaces decouple the scripts from external implementations, so the
chat script can run against Redis in production and an in-memory hub in
tests.

# Key Interfaces

  - ChatHub: publishes chat lines and hands out subscriptions to them.
  - Subscription: a live feed of messages, released with Close.
*/
package ports

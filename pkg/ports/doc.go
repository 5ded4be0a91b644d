/*
Package ports defines the driven ports (interfaces) that adapters implement.

# Key Interfaces

  - DictStore: persists named dicts (value.Value trees) in memory or Redis.

RunDictStoreContract is a reusable test suite every DictStore adapter runs
against itself.
*/
package ports

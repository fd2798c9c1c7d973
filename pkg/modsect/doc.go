/*
Package modsect provides a Go interface for isolating a single faulty mod folder by binary search.

Runs can most easily be created by passing in a run config to [GetRunFromConfig], but can also be created manually by populating a [Run] struct.
For a manually created run to work, at least the following fields have to be populated:
  - Root
  - StateFile
  - Oracle

A mod folder (a [Unit]) is any directory that directly contains a file with a marker extension.
Folders whose names carry the disabled prefix are considered inactive; this prefix is the only on-disk encoding of the active state.

After a run struct was acquired, the bisection can be started using [Run.Start].
The controller repeatedly disables half of the remaining candidates and consults the [Oracle] about whether the problem still occurs, narrowing the candidates until a single folder remains.
Every folder the run disables is recorded in a durable state file before the next step, so that an interrupted run can be undone with a [Recovery].

On return, [Run.Start] has re-enabled everything it disabled, except when the run was ended by cancelling the passed context, in which case the caller owns the cleanup.
*/
package modsect

/*
Package dialog implements the dialog-completion state machine.

Each turn flows one way: raw platform slots are normalized into domain.SlotResolution
values (Normalize, BuildTurn), then the Controller inspects them in a fixed scan order
and emits exactly one domain.Directive:

  - AskDisambiguation when a slot resolved to several candidates,
  - AskOpen when a required slot failed resolution,
  - Delegate while slots are still missing,
  - Resolve once the platform reports the dialog as completed.

The package is pure: it performs no I/O, keeps no state between calls and does not log.
Two turns with identical slot state always produce the identical directive.
*/
package dialog

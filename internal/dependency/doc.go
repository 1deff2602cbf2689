/*
Package dependency infers the precedence graph of a WorkCatalog.

The Builder assigns every work task a unique ID and then asks a Strategy for
the Finish-to-Start edges between them. Two strategies ship with the package:

  - HierarchyStrategy (the default) derives edges from the estimate outline.
    A task depends on its closest parent and on the previous task at the same
    level. Tasks in different branches get no edge and may run in parallel.
  - ExplicitStrategy reads the depends_on codes of each task instead.

Neither strategy fails. Problems in the data (empty catalog, duplicate codes,
dangling references) are reported as warnings on the resulting Graph. Cycles
are not detected here; the CPM engine rejects them.
*/
package dependency

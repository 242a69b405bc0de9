/*
Package custody defines the common types shared by the custody extensions,
as well as implementations of some of the simpler components (when interfaces
would be too much overhead).

Addresses, conditions and POSIX time values are declared here so that every
extension (x/cash, x/sigs, x/timelock) speaks the same language. Storage is
abstracted behind the KVStore interface; concrete stores live in the store
package.

We pass context through context.Context between the transport layer and the
extensions. There should exist two functions for every XYZ of type T that we
want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package custody

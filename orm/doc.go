/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called buckets.
* Each bucket contains only one type of object.
* Objects are stored under a primary key, optionally allocated from a
sequence.
* A bucket may possess secondary indexes (1:1 or 1:N) that are updated
together with the object.
*/
package orm

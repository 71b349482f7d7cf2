/*
Package fragment implements splitting of files into fixed-size fragment files
and restoring the files from them.

A split of report.pdf produces a fragment directory named after the file
without its extension, located next to it:

	/data/
	├── report.pdf
	└── report
	    ├── filedata.frag
	    ├── split_file_1.frag
	    ├── split_file_2.frag
	    └── split_file_3.frag

Every fragment starts with a 4-byte little-endian sequence number followed by
the payload:

	[uint32 LE seq][payload]

The fragment numbered 0 is the metadata fragment, its payload is the UTF-8
name of the original file (report.pdf). Fragments 1..N hold the file
content in order, each one except the last carrying exactly the chunk size
minus the header of it.

Fragment file names are informational only. Reassembly scans the directory
for files with the .frag extension, orders them by the sequence numbers
from their headers and writes the concatenated payloads into the parent
directory under the name from the metadata fragment. The fragment directory
is never modified by reassembly, so it can be replayed any number of times.

Neither splitting nor reassembly is transactional: a failure leaves already
written fragments or output bytes in place.
*/
package fragment

package kv

// The schema will define how to store and retrieve data from the db.
// Composite keys are the packed concatenation of their 32 byte parts, so all
// entries of one data feed share a key prefix.
var (
	datapointsBucket       = []byte("datapoints")        // id -> value || timestamp
	namesBucket            = []byte("dapi-names")        // keccak(name) -> data feed id
	rolesBucket            = []byte("roles")             // role || who -> membership flag
	whitelistBucket        = []byte("whitelist")         // feed || reader -> expiration || count
	whitelistSettersBucket = []byte("whitelist-setters") // feed || reader || setter -> flag

	flagSet   = []byte{1}
	flagUnset = []byte{0}
)

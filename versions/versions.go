/*
Package versions maps save-format data versions to release names.
*/
package versions

// Unknown is returned for data versions that are not in the table.
const Unknown = "Unknown"

var names = map[int32]string{
	1343: "1.12.2",
	1519: "1.13",
	1628: "1.13.1",
	1631: "1.13.2",
	1952: "1.14",
	1957: "1.14.1",
	1963: "1.14.2",
	1968: "1.14.3",
	1976: "1.14.4",
	2225: "1.15",
	2227: "1.15.1",
	2230: "1.15.2",
	2566: "1.16",
	2567: "1.16.1",
	2578: "1.16.2",
	2580: "1.16.3",
	2584: "1.16.4",
	2586: "1.16.5",
	2699: "21w10a",
	2724: "1.17",
	2730: "1.17.1",
	2860: "1.18",
	2865: "1.18.1",
	2975: "1.18.2",
	3105: "1.19",
	3117: "1.19.1",
	3120: "1.19.2",
	3218: "1.19.3",
	3337: "1.19.4",
	3463: "1.20",
	3465: "1.20.1",
	3578: "1.20.2",
	3698: "1.20.3",
	3700: "1.20.4",
	3837: "1.20.5",
	3839: "1.20.6",
	3953: "1.21",
	3955: "1.21.1",
	4082: "1.21.2",
	4189: "1.21.4",
}

// Describe returns the release name for the data version v.
func Describe(v int32) string {
	if name, ok := names[v]; ok {
		return name
	}
	return Unknown
}

// Latest returns the highest data version with a known release name.
func Latest() int32 {
	var latest int32
	for v := range names {
		if v > latest {
			latest = v
		}
	}
	return latest
}

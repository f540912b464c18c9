package signal

import (
	"fmt"
	"strings"
)

// Site-name to signal-prefix tables, copied from the dataset's export
// scripts. The 2024 release (v2) is authoritative; names only present in the
// 2019 release (v1) are kept as a fallback so older model files still
// resolve.

var siteToPrefixV2 = map[string]string{
	"Ascending Aorta":                    "AorticRoot",
	"DTA 1":                              "ThorAorta",
	"Abdominal Aorta 4":                  "AbdAorta",
	"Abdominal Aorta 5":                  "IliacBif",
	"Left Common Carotid Artery":         "LCCA",
	"Left Superior Temporal Artery":      "SupTemporal",
	"Left Brachial Artery":               "Brachial",
	"Left Radial Artery":                 "Radial",
	"Left Digital Artery 3":              "Digital",
	"LEIA":                               "CommonIliac",
	"Left Femoral Artery":                "Femoral",
	"Left Anterior Tibial Artery":        "AntTibial",
	"RICA":                               "ICA",
	"MiddleCerebralArtery(M1)":           "MCA",
	"LeftMiddleCerebralArtery(M1)":       "LMCA",
	"RightMiddleCerebralArtery(M1)":      "RMCA",
	"Right Posterior Cerebral Artery 2":  "PCA",
	"RightAnteriorCerebralArtery2":       "ACA",
	"Left Vertebral Artery":              "LVA",
	"Basilar Artery 2":                   "BA",
	"Right Vertebral Artery":             "RVA",
	"Right Common Carotid Artery":        "RCCA",
}

var siteToPrefixV1 = map[string]string{
	"Ascending Aorta":                          "AorticRoot",
	"Descending Thoracic Aorta I":              "ThorAorta",
	"Abdominal Aorta IV":                       "AbdAorta",
	"Abdominal Aorta V":                        "IliacBif",
	"Left Common Carotid Artery":               "Carotid",
	"Left Superior Temporal Artery":            "SupTemporal",
	"Left Superior Middle Cerebral Artery (M2)": "SupMidCerebral",
	"Left Brachial Artery":                     "Brachial",
	"Left Radial Artery":                       "Radial",
	"Left Digital Artery III":                  "Digital",
	"Left External Iliac Artery":               "CommonIliac",
	"Left Femoral Artery":                      "Femoral",
	"Left Anterior Tibial Artery":              "AntTibial",
}

var prefixToSiteV2 = invert(siteToPrefixV2)
var prefixToSiteV1 = invert(siteToPrefixV1)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// SiteForPrefix maps a signal prefix to its model site name, trying the v2
// table before the v1 fallback.
func SiteForPrefix(prefix string) (string, bool) {
	if site, ok := prefixToSiteV2[prefix]; ok {
		return site, true
	}
	site, ok := prefixToSiteV1[prefix]
	return site, ok
}

// PrefixForSite maps a model site name to its signal prefix, trying the v2
// table before the v1 fallback.
func PrefixForSite(site string) (string, bool) {
	if prefix, ok := siteToPrefixV2[site]; ok {
		return prefix, true
	}
	prefix, ok := siteToPrefixV1[site]
	return prefix, ok
}

// ParseSiteList parses a comma-separated site filter. Entries may be model
// site names or signal prefixes; each is normalized to its signal prefix.
// Duplicates are dropped, first occurrence order kept.
func ParseSiteList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		prefix, ok := PrefixForSite(part)
		if !ok {
			// Accept a prefix given directly
			if _, isPrefix := SiteForPrefix(part); !isPrefix {
				return nil, &UnknownSiteError{Name: part}
			}
			prefix = part
		}
		if _, dup := seen[prefix]; dup {
			continue
		}
		seen[prefix] = struct{}{}
		out = append(out, prefix)
	}
	return out, nil
}

// UnknownSiteError reports a site filter entry with no prefix mapping.
type UnknownSiteError struct {
	Name string
}

func (e *UnknownSiteError) Error() string {
	return fmt.Sprintf("unrecognized site %q", e.Name)
}

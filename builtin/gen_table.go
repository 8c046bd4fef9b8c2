//go:build ignore

// gen_table writes default.txt, the feature table of the built-in model,
// from the trigram frequency profiles below.
//
// Each profile is normalized to sum to one and additively smoothed over the
// union of all trigrams, so that a trigram missing from a profile is
// unlikely but not impossible:
//
//	P(f|c) = (p̂_c(f) + α) / (1 + α·F)
//
// Priors are uniform.
package main

import (
	"bufio"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
)

// smoothing is the pseudo-frequency α added to every trigram of every language.
const smoothing = 1e-4

func main() {
	f, err := os.Create("default.txt")
	if err != nil {
		log.Fatal(err)
	}
	w := bufio.NewWriter(f)
	writeTable(w)
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}

func writeTable(w *bufio.Writer) {
	labels := slices.Sorted(maps.Keys(profiles))
	vocabulary := map[string]struct{}{}
	for _, p := range profiles {
		for gram := range p {
			vocabulary[gram] = struct{}{}
		}
	}
	grams := slices.Sorted(maps.Keys(vocabulary))
	totals := make([]float64, len(labels))
	for c, l := range labels {
		for _, gram := range grams {
			totals[c] += profiles[l][gram]
		}
	}
	norm := 1 + smoothing*float64(len(grams))
	fmt.Fprintln(w, "# Code generated by gen_table.go; DO NOT EDIT.")
	fmt.Fprintln(w, "languages", strings.Join(labels, " "))
	prior := make([]string, len(labels))
	for c := range prior {
		prior[c] = format(1 / float64(len(labels)))
	}
	fmt.Fprintln(w, "prior", strings.Join(prior, " "))
	row := make([]string, len(labels))
	for _, gram := range grams {
		for c, l := range labels {
			row[c] = format((profiles[l][gram]/totals[c] + smoothing) / norm)
		}
		fmt.Fprintln(w, gram, strings.Join(row, " "))
	}
}

func format(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}

// profiles holds the top character trigram frequency profile of every
// built-in language, keyed by ISO 639-1 code. Values are relative
// frequencies; only the proportions within a profile matter.
var profiles = map[string]map[string]float64{
	"az": {
		"lar": 0.012697, "lər": 0.010075, "dir": 0.006809, "arı": 0.006206,
		"əri": 0.005485, "ilə": 0.005140, "nda": 0.005035, "dən": 0.004908,
		"dır": 0.004820, "bir": 0.004702, "ara": 0.004600, "dan": 0.004578,
		"rin": 0.004330, "ini": 0.004303, "ndə": 0.004287, "ind": 0.004253,
		"anı": 0.004096, "ələ": 0.003683, "edi": 0.003669, "nla": 0.003651,
		"ını": 0.003557, "ası": 0.003553, "lan": 0.003423, "əsi": 0.003417,
		"ınd": 0.003275, "adı": 0.003207, "rın": 0.003150, "ala": 0.003137,
		"nın": 0.003100, "əni": 0.003041,
	},
	"de": {
		"der": 0.012, "ein": 0.011, "sch": 0.010, "ich": 0.010,
		"nde": 0.009, "die": 0.009, "che": 0.008, "den": 0.008,
		"und": 0.008, "ten": 0.007, "cht": 0.007, "ine": 0.007,
		"gen": 0.006, "end": 0.006, "ung": 0.006, "ver": 0.006,
		"ter": 0.005, "ber": 0.005, "eit": 0.005, "ste": 0.005,
		"hen": 0.005, "nen": 0.005, "das": 0.004, "auf": 0.004,
		"ist": 0.004, "lic": 0.004, "ach": 0.004, "mit": 0.004,
		"wir": 0.003, "auc": 0.003, "für": 0.003, "ück": 0.002,
	},
	"en": {
		"the": 0.035, "and": 0.016, "ing": 0.015, "her": 0.008,
		"tha": 0.007, "hat": 0.007, "his": 0.006, "ere": 0.006,
		"for": 0.006, "ent": 0.005, "ion": 0.005, "ter": 0.005,
		"was": 0.005, "you": 0.004, "ith": 0.004, "ver": 0.004,
		"all": 0.004, "wit": 0.004, "thi": 0.004, "tio": 0.004,
		"are": 0.003, "ons": 0.003, "hou": 0.003, "ght": 0.003,
		"out": 0.003, "oul": 0.003, "ave": 0.003, "hen": 0.003,
		"not": 0.003, "ome": 0.003, "whi": 0.002, "hey": 0.002,
	},
	"es": {
		"que": 0.011, "ent": 0.009, "los": 0.009, "del": 0.008,
		"ión": 0.008, "las": 0.007, "ado": 0.007, "con": 0.007,
		"est": 0.006, "ara": 0.006, "nte": 0.006, "por": 0.006,
		"ien": 0.005, "par": 0.005, "sta": 0.005, "aci": 0.005,
		"ció": 0.005, "una": 0.005, "era": 0.004, "res": 0.004,
		"ero": 0.004, "mos": 0.004, "ues": 0.004, "ene": 0.004,
		"ida": 0.004, "tra": 0.004, "nto": 0.003, "com": 0.003,
		"ñan": 0.002, "año": 0.002, "ndo": 0.003, "ust": 0.002,
	},
	"fr": {
		"les": 0.012, "ent": 0.011, "ion": 0.009, "des": 0.009,
		"que": 0.008, "est": 0.008, "par": 0.006, "ait": 0.006,
		"our": 0.006, "ous": 0.006, "men": 0.006, "ans": 0.006,
		"ell": 0.005, "tio": 0.005, "eur": 0.005, "dan": 0.005,
		"pou": 0.004, "une": 0.004, "qui": 0.004, "lle": 0.004,
		"com": 0.004, "ant": 0.004, "ais": 0.004, "sur": 0.003,
		"pas": 0.003, "son": 0.003, "ett": 0.003, "ire": 0.003,
		"tre": 0.003, "ien": 0.003, "été": 0.002, "ère": 0.002,
	},
	"it": {
		"che": 0.013, "ell": 0.009, "per": 0.008, "ent": 0.008,
		"del": 0.008, "one": 0.008, "ato": 0.007, "con": 0.007,
		"are": 0.006, "non": 0.006, "lla": 0.006, "zio": 0.006,
		"ion": 0.005, "ere": 0.005, "tto": 0.005, "gli": 0.005,
		"ano": 0.005, "nte": 0.005, "lle": 0.004, "ità": 0.004,
		"sta": 0.004, "ame": 0.004, "ter": 0.004, "nel": 0.004,
		"ret": 0.003, "pre": 0.003, "ono": 0.003, "eri": 0.003,
		"zza": 0.002, "cch": 0.002, "ggi": 0.002, "iam": 0.002,
	},
	"nl": {
		"een": 0.014, "van": 0.011, "het": 0.010, "ijk": 0.008,
		"aar": 0.008, "oor": 0.007, "ver": 0.007, "and": 0.006,
		"den": 0.006, "ing": 0.006, "ede": 0.005, "erd": 0.005,
		"ter": 0.005, "ijn": 0.005, "nde": 0.005, "gen": 0.005,
		"sch": 0.004, "lij": 0.004, "nie": 0.004, "oon": 0.004,
		"wor": 0.004, "zij": 0.004, "dat": 0.004, "eer": 0.004,
		"maa": 0.003, "ste": 0.003, "ach": 0.003, "uit": 0.003,
		"aag": 0.002, "ouw": 0.002, "eid": 0.003, "ooi": 0.002,
	},
	"pt": {
		"que": 0.010, "ent": 0.009, "ção": 0.008, "ado": 0.008,
		"nte": 0.007, "com": 0.007, "est": 0.006, "ara": 0.006,
		"par": 0.006, "men": 0.006, "dos": 0.006, "ões": 0.005,
		"uma": 0.005, "ida": 0.005, "das": 0.005, "não": 0.005,
		"por": 0.005, "era": 0.004, "sta": 0.004, "res": 0.004,
		"con": 0.004, "tra": 0.004, "ica": 0.004, "ame": 0.003,
		"ais": 0.003, "mai": 0.003, "ont": 0.003, "ele": 0.003,
		"lho": 0.002, "nho": 0.002, "ssa": 0.002, "ãos": 0.001,
	},
	"ru": {
		"ого": 0.010, "ени": 0.009, "ост": 0.008, "ста": 0.007,
		"ать": 0.007, "при": 0.006, "про": 0.006, "ани": 0.006,
		"ния": 0.006, "что": 0.006, "ова": 0.006, "ств": 0.006,
		"ков": 0.005, "ель": 0.005, "ере": 0.005, "ние": 0.005,
		"ный": 0.005, "его": 0.005, "тор": 0.004, "как": 0.004,
		"ает": 0.004, "пре": 0.004, "ных": 0.004, "тел": 0.004,
		"для": 0.003, "ако": 0.003, "рав": 0.003, "это": 0.003,
		"ешь": 0.002, "чем": 0.002, "ыва": 0.002, "щий": 0.002,
	},
	"tr": {
		"lar": 0.012, "ler": 0.011, "eri": 0.008, "bir": 0.007,
		"ini": 0.006, "yor": 0.006, "ara": 0.005, "ası": 0.005,
		"arı": 0.005, "ını": 0.005, "lan": 0.005, "len": 0.005,
		"rak": 0.004, "mak": 0.004, "ind": 0.004, "dır": 0.004,
		"ile": 0.004, "ken": 0.004, "iği": 0.004, "dan": 0.004,
		"den": 0.004, "içi": 0.004, "sın": 0.003, "ıyo": 0.003,
		"olm": 0.003, "ama": 0.003, "ğin": 0.003, "ünü": 0.002,
		"şey": 0.002, "iyo": 0.003, "ece": 0.003, "mek": 0.003,
	},
}

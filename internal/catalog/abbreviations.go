package catalog

import (
	"regexp"
	"strings"
)

// reporters is Bluebook Table 1
var reporters = map[string]string{
	"United States Reports":                "U.S.",
	"Supreme Court Reporter":               "S. Ct.",
	"Lawyers Edition":                      "L. Ed.",
	"Lawyers Edition Second":               "L. Ed. 2d",
	"Federal Reporter":                     "F.",
	"Federal Reporter Second Series":       "F.2d",
	"Federal Reporter Third Series":        "F.3d",
	"Federal Reporter Fourth Series":       "F.4d",
	"Federal Supplement":                   "F. Supp.",
	"Federal Supplement Second Series":     "F. Supp. 2d",
	"Federal Supplement Third Series":      "F. Supp. 3d",
	"Federal Rules Decisions":              "F.R.D.",
	"Bankruptcy Reporter":                  "B.R.",
	"Federal Claims Reporter":              "Fed. Cl.",
	"Veterans Appeals Reporter":            "Vet. App.",
	"Military Justice Reporter":            "M.J.",
	"Atlantic Reporter":                    "A.",
	"Atlantic Reporter Second Series":      "A.2d",
	"Atlantic Reporter Third Series":       "A.3d",
	"North Eastern Reporter":               "N.E.",
	"North Eastern Reporter Second Series": "N.E.2d",
	"North Eastern Reporter Third Series":  "N.E.3d",
	"North Western Reporter":               "N.W.",
	"North Western Reporter Second Series": "N.W.2d",
	"Pacific Reporter":                     "P.",
	"Pacific Reporter Second Series":       "P.2d",
	"Pacific Reporter Third Series":        "P.3d",
	"South Eastern Reporter":               "S.E.",
	"South Eastern Reporter Second Series": "S.E.2d",
	"South Western Reporter":               "S.W.",
	"South Western Reporter Second Series": "S.W.2d",
	"South Western Reporter Third Series":  "S.W.3d",
	"Southern Reporter":                    "So.",
	"Southern Reporter Second Series":      "So. 2d",
	"Southern Reporter Third Series":       "So. 3d",
	"California Reporter":                  "Cal. Rptr.",
	"California Reporter Second Series":    "Cal. Rptr. 2d",
	"California Reporter Third Series":     "Cal. Rptr. 3d",
	"New York Supplement":                  "N.Y.S.",
	"New York Supplement Second Series":    "N.Y.S.2d",
	"New York Supplement Third Series":     "N.Y.S.3d",
}

// courts is Bluebook Table 7. An empty abbreviation omits the court.
var courts = map[string]string{
	"Supreme Court of the United States": "",
	"Supreme Court":                      "",
	"United States Court of Appeals for the First Circuit": "1st Cir.",
	"First Circuit": "1st Cir.",
	"United States Court of Appeals for the Second Circuit": "2d Cir.",
	"Second Circuit": "2d Cir.",
	"United States Court of Appeals for the Third Circuit": "3d Cir.",
	"Third Circuit": "3d Cir.",
	"United States Court of Appeals for the Fourth Circuit": "4th Cir.",
	"Fourth Circuit": "4th Cir.",
	"United States Court of Appeals for the Fifth Circuit": "5th Cir.",
	"Fifth Circuit": "5th Cir.",
	"United States Court of Appeals for the Sixth Circuit": "6th Cir.",
	"Sixth Circuit": "6th Cir.",
	"United States Court of Appeals for the Seventh Circuit": "7th Cir.",
	"Seventh Circuit": "7th Cir.",
	"United States Court of Appeals for the Eighth Circuit": "8th Cir.",
	"Eighth Circuit": "8th Cir.",
	"United States Court of Appeals for the Ninth Circuit": "9th Cir.",
	"Ninth Circuit": "9th Cir.",
	"United States Court of Appeals for the Tenth Circuit": "10th Cir.",
	"Tenth Circuit": "10th Cir.",
	"United States Court of Appeals for the Eleventh Circuit": "11th Cir.",
	"Eleventh Circuit": "11th Cir.",
	"United States Court of Appeals for the District of Columbia Circuit": "D.C. Cir.",
	"D.C. Circuit": "D.C. Cir.",
	"United States Court of Appeals for the Federal Circuit": "Fed. Cir.",
	"Federal Circuit":                  "Fed. Cir.",
	"District of Columbia":             "D.D.C.",
	"Eastern District of New York":     "E.D.N.Y.",
	"Southern District of New York":    "S.D.N.Y.",
	"Northern District of California":  "N.D. Cal.",
	"Central District of California":   "C.D. Cal.",
	"Eastern District of Virginia":     "E.D. Va.",
	"District of Massachusetts":        "D. Mass.",
	"Northern District of Illinois":    "N.D. Ill.",
	"Eastern District of Pennsylvania": "E.D. Pa.",
	"District of Delaware":             "D. Del.",
}

// journals is Bluebook Table 13
var journals = map[string]string{
	"Harvard Law Review":                    "Harv. L. Rev.",
	"Yale Law Journal":                      "Yale L.J.",
	"Stanford Law Review":                   "Stan. L. Rev.",
	"Columbia Law Review":                   "Colum. L. Rev.",
	"Michigan Law Review":                   "Mich. L. Rev.",
	"Virginia Law Review":                   "Va. L. Rev.",
	"California Law Review":                 "Calif. L. Rev.",
	"Georgetown Law Journal":                "Geo. L.J.",
	"Texas Law Review":                      "Tex. L. Rev.",
	"University of Pennsylvania Law Review": "U. Pa. L. Rev.",
	"Duke Law Journal":                      "Duke L.J.",
	"Northwestern University Law Review":    "Nw. U. L. Rev.",
	"University of Chicago Law Review":      "U. Chi. L. Rev.",
	"New York University Law Review":        "N.Y.U. L. Rev.",
	"Cornell Law Review":                    "Cornell L. Rev.",
	"Minnesota Law Review":                  "Minn. L. Rev.",
	"Vanderbilt Law Review":                 "Vand. L. Rev.",
	"Boston University Law Review":          "B.U. L. Rev.",
	"George Washington Law Review":          "Geo. Wash. L. Rev.",
	"Notre Dame Law Review":                 "Notre Dame L. Rev.",
	"UCLA Law Review":                       "UCLA L. Rev.",
	"Southern California Law Review":        "S. Cal. L. Rev.",
	"Wisconsin Law Review":                  "Wis. L. Rev.",
	"Indiana Law Journal":                   "Ind. L.J.",
	"Iowa Law Review":                       "Iowa L. Rev.",
	"Washington Law Review":                 "Wash. L. Rev.",
	"American Journal of International Law": "Am. J. Int'l L.",
	"Journal of Law and Economics":          "J.L. & Econ.",
	"Law and Contemporary Problems":         "Law & Contemp. Probs.",
}

// states is Bluebook Table 10
var states = map[string]string{
	"Alabama":              "Ala.",
	"Alaska":               "Alaska",
	"Arizona":              "Ariz.",
	"Arkansas":             "Ark.",
	"California":           "Cal.",
	"Colorado":             "Colo.",
	"Connecticut":          "Conn.",
	"Delaware":             "Del.",
	"District of Columbia": "D.C.",
	"Florida":              "Fla.",
	"Georgia":              "Ga.",
	"Hawaii":               "Haw.",
	"Idaho":                "Idaho",
	"Illinois":             "Ill.",
	"Indiana":              "Ind.",
	"Iowa":                 "Iowa",
	"Kansas":               "Kan.",
	"Kentucky":             "Ky.",
	"Louisiana":            "La.",
	"Maine":                "Me.",
	"Maryland":             "Md.",
	"Massachusetts":        "Mass.",
	"Michigan":             "Mich.",
	"Minnesota":            "Minn.",
	"Mississippi":          "Miss.",
	"Missouri":             "Mo.",
	"Montana":              "Mont.",
	"Nebraska":             "Neb.",
	"Nevada":               "Nev.",
	"New Hampshire":        "N.H.",
	"New Jersey":           "N.J.",
	"New Mexico":           "N.M.",
	"New York":             "N.Y.",
	"North Carolina":       "N.C.",
	"North Dakota":         "N.D.",
	"Ohio":                 "Ohio",
	"Oklahoma":             "Okla.",
	"Oregon":               "Or.",
	"Pennsylvania":         "Pa.",
	"Rhode Island":         "R.I.",
	"South Carolina":       "S.C.",
	"South Dakota":         "S.D.",
	"Tennessee":            "Tenn.",
	"Texas":                "Tex.",
	"Utah":                 "Utah",
	"Vermont":              "Vt.",
	"Virginia":             "Va.",
	"Washington":           "Wash.",
	"West Virginia":        "W. Va.",
	"Wisconsin":            "Wis.",
	"Wyoming":              "Wyo.",
}

// partyWords is Bluebook Table 6, applied in order
var partyWords = []struct{ full, abbrev string }{
	{"Administration", "Admin."},
	{"Administrative", "Admin."},
	{"Administrator", "Adm'r"},
	{"Administratrix", "Adm'x"},
	{"America", "Am."},
	{"American", "Am."},
	{"and", "&"},
	{"Association", "Ass'n"},
	{"Atlantic", "Atl."},
	{"Authority", "Auth."},
	{"Automobile", "Auto."},
	{"Automotive", "Auto."},
	{"Avenue", "Ave."},
	{"Board", "Bd."},
	{"Brotherhood", "Bhd."},
	{"Brothers", "Bros."},
	{"Building", "Bldg."},
	{"Center", "Ctr."},
	{"Central", "Cent."},
	{"Chemical", "Chem."},
	{"Commission", "Comm'n"},
	{"Commissioner", "Comm'r"},
	{"Committee", "Comm."},
	{"Communication", "Commc'n"},
	{"Communications", "Commc'ns"},
	{"Community", "Cmty."},
	{"Company", "Co."},
	{"Consolidated", "Consol."},
	{"Construction", "Constr."},
	{"Corporation", "Corp."},
	{"County", "Cnty."},
	{"Department", "Dep't"},
	{"Development", "Dev."},
	{"Director", "Dir."},
	{"Distributor", "Distrib."},
	{"Distributors", "Distribs."},
	{"District", "Dist."},
	{"Division", "Div."},
	{"East", "E."},
	{"Eastern", "E."},
	{"Economic", "Econ."},
	{"Education", "Educ."},
	{"Educational", "Educ."},
	{"Electric", "Elec."},
	{"Electrical", "Elec."},
	{"Electronic", "Elec."},
	{"Electronics", "Elecs."},
	{"Engineering", "Eng'g"},
	{"Enterprise", "Enter."},
	{"Enterprises", "Enters."},
	{"Entertainment", "Ent."},
	{"Environment", "Env't"},
	{"Environmental", "Envtl."},
	{"Equipment", "Equip."},
	{"Exchange", "Exch."},
	{"Executor", "Ex'r"},
	{"Executrix", "Ex'x"},
	{"Export", "Exp."},
	{"Federal", "Fed."},
	{"Federation", "Fed'n"},
	{"Financial", "Fin."},
	{"Foundation", "Found."},
	{"General", "Gen."},
	{"Government", "Gov't"},
	{"Guaranty", "Guar."},
	{"Hospital", "Hosp."},
	{"Housing", "Hous."},
	{"Import", "Imp."},
	{"Incorporated", "Inc."},
	{"Indemnity", "Indem."},
	{"Independent", "Indep."},
	{"Industrial", "Indus."},
	{"Industries", "Indus."},
	{"Industry", "Indus."},
	{"Information", "Info."},
	{"Institute", "Inst."},
	{"Institution", "Inst."},
	{"Insurance", "Ins."},
	{"International", "Int'l"},
	{"Investment", "Inv."},
	{"Investor", "Inv."},
	{"Laboratory", "Lab."},
	{"Laboratories", "Labs."},
	{"Liability", "Liab."},
	{"Limited", "Ltd."},
	{"Litigation", "Litig."},
	{"Machine", "Mach."},
	{"Machinery", "Mach."},
	{"Maintenance", "Maint."},
	{"Management", "Mgmt."},
	{"Manager", "Mgr."},
	{"Manufacturer", "Mfr."},
	{"Manufacturers", "Mfrs."},
	{"Manufacturing", "Mfg."},
	{"Market", "Mkt."},
	{"Marketing", "Mktg."},
	{"Mechanical", "Mech."},
	{"Medical", "Med."},
	{"Memorial", "Mem'l"},
	{"Merchant", "Merch."},
	{"Metropolitan", "Metro."},
	{"Municipal", "Mun."},
	{"Mutual", "Mut."},
	{"National", "Nat'l"},
	{"North", "N."},
	{"Northeast", "Ne."},
	{"Northern", "N."},
	{"Northwest", "Nw."},
	{"Number", "No."},
	{"Organization", "Org."},
	{"Pacific", "Pac."},
	{"Partnership", "P'ship"},
	{"Petroleum", "Pet."},
	{"Pharmaceutical", "Pharm."},
	{"President", "Pres."},
	{"Product", "Prod."},
	{"Products", "Prods."},
	{"Production", "Prod."},
	{"Professional", "Prof'l"},
	{"Property", "Prop."},
	{"Protection", "Prot."},
	{"Public", "Pub."},
	{"Publication", "Publ'n"},
	{"Publications", "Publ'ns"},
	{"Publishing", "Publ'g"},
	{"Railroad", "R.R."},
	{"Railway", "Ry."},
	{"Regional", "Reg'l"},
	{"Reproduction", "Reprod."},
	{"Research", "Rsch."},
	{"Resource", "Res."},
	{"Resources", "Res."},
	{"Restaurant", "Rest."},
	{"Road", "Rd."},
	{"Savings", "Sav."},
	{"School", "Sch."},
	{"Science", "Sci."},
	{"Scientific", "Sci."},
	{"Secretary", "Sec'y"},
	{"Security", "Sec."},
	{"Service", "Serv."},
	{"Services", "Servs."},
	{"Society", "Soc'y"},
	{"South", "S."},
	{"Southeast", "Se."},
	{"Southern", "S."},
	{"Southwest", "Sw."},
	{"Standard", "Stand."},
	{"State", "State"},
	{"Steamship", "S.S."},
	{"Street", "St."},
	{"Subcommittee", "Subcomm."},
	{"Superintendent", "Supt."},
	{"Surety", "Sur."},
	{"System", "Sys."},
	{"Systems", "Sys."},
	{"Technical", "Tech."},
	{"Technology", "Tech."},
	{"Telecommunications", "Telecomms."},
	{"Telephone", "Tel."},
	{"Television", "T.V."},
	{"Temporary", "Temp."},
	{"Textile", "Textile"},
	{"Transcontinental", "Transcon."},
	{"Transport", "Transp."},
	{"Transportation", "Transp."},
	{"Trustee", "Tr."},
	{"Uniform", "Unif."},
	{"United", "United"},
	{"United States", "United States"},
	{"University", "Univ."},
	{"Utility", "Util."},
	{"Utilities", "Utils."},
	{"Village", "Vill."},
	{"West", "W."},
	{"Western", "W."},
}

type partyRule struct {
	re     *regexp.Regexp
	abbrev string
}

var partyRules = compilePartyRules()

func compilePartyRules() []partyRule {
	rules := make([]partyRule, 0, len(partyWords))
	for _, w := range partyWords {
		rules = append(rules, partyRule{
			re:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w.full) + `\b`),
			abbrev: w.abbrev,
		})
	}
	return rules
}

// ReporterAbbreviation returns the abbreviation for a reporter name, or the
// name unchanged when the table has no entry
func ReporterAbbreviation(reporter string) string {
	if abbrev, ok := reporters[reporter]; ok {
		return abbrev
	}
	return reporter
}

// CourtAbbreviation returns the abbreviation for a court. The empty string
// means the court is not named in the parenthetical (U.S. Supreme Court).
func CourtAbbreviation(court string) string {
	if abbrev, ok := courts[court]; ok {
		return abbrev
	}
	return court
}

// JournalAbbreviation returns the abbreviation for a journal name
func JournalAbbreviation(journal string) string {
	if abbrev, ok := journals[journal]; ok {
		return abbrev
	}
	return journal
}

// AbbreviateCode abbreviates a leading state name in a code designation
// ("Florida Stat." becomes "Fla. Stat.")
func AbbreviateCode(code string) string {
	for state, abbrev := range states {
		if strings.HasPrefix(code, state+" ") {
			return abbrev + code[len(state):]
		}
	}
	return code
}

// AbbreviatePartyName drops a leading "The" and applies the party-name word
// abbreviations in table order
func AbbreviatePartyName(party string) string {
	result := party
	if strings.HasPrefix(strings.ToLower(result), "the ") {
		result = result[4:]
	}

	for _, rule := range partyRules {
		result = rule.re.ReplaceAllLiteralString(result, rule.abbrev)
	}

	return strings.TrimSpace(result)
}

package jetimage

import (
	"math"
	"strings"

	"github.com/decibelcooper/jetimage/jet"
)

// Normalizer bounds pixel intensities before rotation.
const Normalizer = 4000.0

// Selection is the kinematic window applied to leading jets before
// conversion.
type Selection struct {
	EtaMax       float64
	PtMin, PtMax float64
	MMin, MMax   float64
}

var DefaultSelection = Selection{EtaMax: 2, PtMin: 250, PtMax: 300, MMin: 0, MMax: 200}

// Accept reports whether the leading jet of rec lies strictly inside the
// window.
func (s Selection) Accept(rec *EventRecord) bool {
	eta := math.Abs(float64(rec.LeadingEta))
	pt := float64(rec.LeadingPt)
	m := float64(rec.LeadingM)
	return eta < s.EtaMax &&
		pt > s.PtMin && pt < s.PtMax &&
		m > s.MMin && m < s.MMax
}

// IsSignal reports whether filename contains matcher, ignoring case,
// blanks and dashes.
func IsSignal(filename, matcher string) bool {
	clean := strings.NewReplacer(" ", "", "-", "")
	key := clean.Replace(strings.ToLower(matcher))
	return strings.Contains(clean.Replace(strings.ToLower(filename)), key)
}

// RotationAngle returns the angle by which the image of rec has to be
// turned clockwise so that the subleading subjet, or the principal axis
// when there is a single subjet, points along the fixed reference
// direction. The angle is 0 when neither direction is known.
func RotationAngle(rec *EventRecord) float64 {
	e, p := float64(rec.SubLeadingEta), float64(rec.SubLeadingPhi)
	if e < -10 || p < -10 {
		e, p = float64(rec.PCEta), float64(rec.PCPhi)
	}
	if e == Unset || p == Unset || (e == 0 && p == 0) {
		return 0
	}

	angle := math.Atan(p/e) + math.Pi/2
	if -math.Sin(angle)*e+math.Cos(angle)*p > 0 {
		angle -= math.Pi
	}
	return angle
}

// Rotate turns the dim x dim image img (x-major, see jet.Rasterize)
// counterclockwise by theta radians about its centre. Every output pixel
// samples the input bilinearly at the inversely rotated position. The
// region rotated in from outside the image is zero.
func Rotate(img []float64, dim int, theta float64) []float64 {
	out := make([]float64, len(img))
	c := float64(dim-1) / 2
	sin, cos := math.Sincos(theta)

	at := func(ix, iy int) float64 {
		if ix < 0 || iy < 0 || ix >= dim || iy >= dim {
			return 0
		}
		return img[ix*dim+iy]
	}

	for ix := 0; ix < dim; ix++ {
		for iy := 0; iy < dim; iy++ {
			x, y := float64(ix)-c, float64(iy)-c
			sx := cos*x + sin*y + c
			sy := -sin*x + cos*y + c

			x0, y0 := math.Floor(sx), math.Floor(sy)
			fx, fy := sx-x0, sy-y0
			i0, j0 := int(x0), int(y0)
			out[ix*dim+iy] = (1-fx)*(1-fy)*at(i0, j0) +
				fx*(1-fy)*at(i0+1, j0) +
				(1-fx)*fy*at(i0, j0+1) +
				fx*fy*at(i0+1, j0+1)
		}
	}
	return out
}

// Flip mirrors img along x unless the columns with large x already carry
// more intensity than those with small x. The middle column of an odd
// sized image counts for neither side.
func Flip(img []float64, dim int) []float64 {
	var left, right float64
	half := dim / 2
	for ix := 0; ix < dim; ix++ {
		for iy := 0; iy < dim; iy++ {
			switch {
			case ix < half:
				left += img[ix*dim+iy]
			case ix >= dim-half:
				right += img[ix*dim+iy]
			}
		}
	}
	if right > left {
		return img
	}

	out := make([]float64, len(img))
	for ix := 0; ix < dim; ix++ {
		copy(out[(dim-1-ix)*dim:(dim-ix)*dim], img[ix*dim:(ix+1)*dim])
	}
	return out
}

// ImageRecord is one entry of the converted "images" tree.
type ImageRecord struct {
	NPixels int32     `groot:"NPixels"`
	Image   []float32 `groot:"image[NPixels]"`

	Signal float32 `groot:"signal"`

	JetPt     float32 `groot:"jet_pt"`
	JetEta    float32 `groot:"jet_eta"`
	JetPhi    float32 `groot:"jet_phi"`
	JetM      float32 `groot:"jet_m"`
	JetDeltaR float32 `groot:"jet_delta_R"`

	Tau32 float32 `groot:"tau_32"`
	Tau21 float32 `groot:"tau_21"`
	Tau1  float32 `groot:"tau_1"`
	Tau2  float32 `groot:"tau_2"`
	Tau3  float32 `groot:"tau_3"`

	// Mass and tau_2/tau_1 computed from the preprocessed pixels.
	ImageM     float32 `groot:"image_m"`
	ImageTau21 float32 `groot:"image_tau_21"`
}

// Preprocess clips the intensities of rec to [-1, Normalizer], rotates the
// image by -RotationAngle and flips it so the right half is heavier. width
// is the half width of the image in eta and phi.
func Preprocess(rec *EventRecord, dim int, width float64, signal bool) ImageRecord {
	img := make([]float64, len(rec.Intensity))
	for i, v := range rec.Intensity {
		img[i] = math.Min(math.Max(float64(v), -1), Normalizer)
	}
	img = Flip(Rotate(img, dim, -RotationAngle(rec)), dim)

	out := ImageRecord{
		NPixels:   int32(len(img)),
		Image:     make([]float32, len(img)),
		JetPt:     rec.LeadingPt,
		JetEta:    rec.LeadingEta,
		JetPhi:    rec.LeadingPhi,
		JetM:      rec.LeadingM,
		JetDeltaR: rec.DeltaR,
		Tau32:     rec.Tau32,
		Tau21:     rec.Tau21,
		Tau1:      rec.Tau1,
		Tau2:      rec.Tau2,
		Tau3:      rec.Tau3,

		ImageM:     float32(jet.ImageMass(img, dim, width)),
		ImageTau21: float32(jet.ImageTau21(img, dim, width)),
	}
	if signal {
		out.Signal = 1
	}
	for i, v := range img {
		out.Image[i] = float32(v)
	}
	return out
}

// Features returns the scalar columns of r in the order signal, pt, eta,
// phi, m, delta R, tau_32, tau_21, tau_1, tau_2, tau_3, image m, image
// tau_21.
func (r *ImageRecord) Features() []float64 {
	return []float64{
		float64(r.Signal),
		float64(r.JetPt), float64(r.JetEta), float64(r.JetPhi), float64(r.JetM),
		float64(r.JetDeltaR),
		float64(r.Tau32), float64(r.Tau21),
		float64(r.Tau1), float64(r.Tau2), float64(r.Tau3),
		float64(r.ImageM), float64(r.ImageTau21),
	}
}

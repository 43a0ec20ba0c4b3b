package shader

// All sources target WebGL2 (GLSL ES 3.00). The GL backend translates them for
// the host driver, so the same text serves desktop and GLES contexts.

// ─────────────────────────────────── Shared ────────────────────────────────────

const vertexPreamble = `#version 300 es
precision highp float;
precision highp int;

uniform mat4 u_Model;
uniform mat4 u_ModelInvTr;
uniform mat4 u_ViewProj;

layout(location = 0) in vec4 vs_Pos;
layout(location = 1) in vec4 vs_Nor;

out vec4 fs_Nor;
out vec4 fs_LightVec;
out vec4 fs_Pos;

const vec4 lightPos = vec4(5.0, 5.0, 3.0, 1.0);
`

const fragmentPreamble = `#version 300 es
precision highp float;
precision highp int;

in vec4 fs_Nor;
in vec4 fs_LightVec;
in vec4 fs_Pos;

out vec4 out_Col;
`

// noiseLib holds value, gradient and cellular noise plus their fractal sums.
// perlin returns [-1, 1]; valueNoise and worley return [0, 1].
const noiseLib = `
float hash31(vec3 p) {
    p = fract(p * 0.1031);
    p += dot(p, p.zyx + 31.32);
    return fract((p.x + p.y) * p.z);
}

vec3 hash33(vec3 p) {
    p = fract(p * vec3(0.1031, 0.1030, 0.0973));
    p += dot(p, p.yxz + 33.33);
    return fract((p.xxy + p.yxx) * p.zyx);
}

float valueNoise(vec3 p) {
    vec3 i = floor(p);
    vec3 f = fract(p);
    vec3 u = f * f * (3.0 - 2.0 * f);
    float n000 = hash31(i);
    float n100 = hash31(i + vec3(1.0, 0.0, 0.0));
    float n010 = hash31(i + vec3(0.0, 1.0, 0.0));
    float n110 = hash31(i + vec3(1.0, 1.0, 0.0));
    float n001 = hash31(i + vec3(0.0, 0.0, 1.0));
    float n101 = hash31(i + vec3(1.0, 0.0, 1.0));
    float n011 = hash31(i + vec3(0.0, 1.0, 1.0));
    float n111 = hash31(i + vec3(1.0, 1.0, 1.0));
    return mix(mix(mix(n000, n100, u.x), mix(n010, n110, u.x), u.y),
               mix(mix(n001, n101, u.x), mix(n011, n111, u.x), u.y), u.z);
}

float gradCorner(vec3 cell, vec3 corner, vec3 f) {
    vec3 g = normalize(hash33(cell + corner) * 2.0 - 1.0);
    return dot(g, f - corner);
}

float perlin(vec3 p) {
    vec3 i = floor(p);
    vec3 f = fract(p);
    vec3 u = f * f * f * (f * (f * 6.0 - 15.0) + 10.0);
    float n000 = gradCorner(i, vec3(0.0, 0.0, 0.0), f);
    float n100 = gradCorner(i, vec3(1.0, 0.0, 0.0), f);
    float n010 = gradCorner(i, vec3(0.0, 1.0, 0.0), f);
    float n110 = gradCorner(i, vec3(1.0, 1.0, 0.0), f);
    float n001 = gradCorner(i, vec3(0.0, 0.0, 1.0), f);
    float n101 = gradCorner(i, vec3(1.0, 0.0, 1.0), f);
    float n011 = gradCorner(i, vec3(0.0, 1.0, 1.0), f);
    float n111 = gradCorner(i, vec3(1.0, 1.0, 1.0), f);
    return mix(mix(mix(n000, n100, u.x), mix(n010, n110, u.x), u.y),
               mix(mix(n001, n101, u.x), mix(n011, n111, u.x), u.y), u.z);
}

float worley(vec3 p) {
    vec3 i = floor(p);
    vec3 f = fract(p);
    float d = 1.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            for (int z = -1; z <= 1; z++) {
                vec3 o = vec3(float(x), float(y), float(z));
                vec3 r = o + hash33(i + o) - f;
                d = min(d, dot(r, r));
            }
        }
    }
    return sqrt(d);
}

float fbmValue(vec3 p, int octaves, vec2 fractal) {
    float sum = 0.0;
    float amp = 0.5;
    float freq = fractal.x;
    for (int i = 0; i < 8; i++) {
        if (i >= octaves) break;
        sum += amp * valueNoise(p * freq);
        freq *= 2.0;
        amp *= fractal.y;
    }
    return sum;
}

float fbmPerlin(vec3 p, int octaves, vec2 fractal) {
    float sum = 0.0;
    float amp = 0.5;
    float freq = fractal.x;
    for (int i = 0; i < 8; i++) {
        if (i >= octaves) break;
        sum += amp * perlin(p * freq);
        freq *= 2.0;
        amp *= fractal.y;
    }
    return sum * 0.5 + 0.5;
}

float fbmWorley(vec3 p, int octaves, vec2 fractal) {
    float sum = 0.0;
    float amp = 0.5;
    float freq = fractal.x;
    for (int i = 0; i < 8; i++) {
        if (i >= octaves) break;
        sum += amp * worley(p * freq);
        freq *= 2.0;
        amp *= fractal.y;
    }
    return sum;
}
`

// ─────────────────────────────────── Vertex ────────────────────────────────────

const lambertVert = vertexPreamble + `
void main() {
    mat3 invTranspose = mat3(u_ModelInvTr);
    fs_Nor = vec4(invTranspose * vec3(vs_Nor), 0.0);

    vec4 modelposition = u_Model * vs_Pos;
    fs_Pos = modelposition;
    fs_LightVec = lightPos - modelposition;
    gl_Position = u_ViewProj * modelposition;
}
`

const vertexDeformatorVert = vertexPreamble + `
uniform int u_VertTime;

void main() {
    float t = float(u_VertTime) * 0.02;
    float wobble = 0.12 * sin(t * 3.0 + vs_Pos.y * 8.0) * cos(t * 2.0 + vs_Pos.x * 6.0);
    vec4 deformed = vec4(vs_Pos.xyz + vs_Nor.xyz * wobble, 1.0);

    mat3 invTranspose = mat3(u_ModelInvTr);
    fs_Nor = vec4(invTranspose * vec3(vs_Nor), 0.0);

    vec4 modelposition = u_Model * deformed;
    fs_Pos = modelposition;
    fs_LightVec = lightPos - modelposition;
    gl_Position = u_ViewProj * modelposition;
}
`

const twistDeformatorVert = vertexPreamble + `
uniform int u_VertTime;

mat3 rotateY(float a) {
    float c = cos(a);
    float s = sin(a);
    return mat3(c, 0.0, -s, 0.0, 1.0, 0.0, s, 0.0, c);
}

void main() {
    float t = float(u_VertTime) * 0.01;
    mat3 twist = rotateY(vs_Pos.y * sin(t) * 1.5);
    vec4 twisted = vec4(twist * vs_Pos.xyz, 1.0);

    mat3 invTranspose = mat3(u_ModelInvTr);
    fs_Nor = vec4(invTranspose * (twist * vec3(vs_Nor)), 0.0);

    vec4 modelposition = u_Model * twisted;
    fs_Pos = modelposition;
    fs_LightVec = lightPos - modelposition;
    gl_Position = u_ViewProj * modelposition;
}
`

// planetVert displaces the sphere by terraced multi-octave gradient noise.
// u_ElevationParams is {octaves, terraces, height, sea level}.
const planetVert = vertexPreamble + `
uniform int u_VertTime;
uniform float u_ElevationParams[4];
uniform float u_OctaveAmps[6];

out float fs_Elev;
` + noiseLib + `
float elevation(vec3 p) {
    int octaves = int(u_ElevationParams[0]);
    float sum = 0.0;
    float norm = 0.0;
    float freq = 1.5;
    for (int i = 0; i < 6; i++) {
        if (i >= octaves) break;
        sum += u_OctaveAmps[i] * perlin(p * freq);
        norm += u_OctaveAmps[i];
        freq *= 2.0;
    }
    if (norm > 0.0) {
        sum /= norm;
    }
    float terraces = max(u_ElevationParams[1], 1.0);
    return floor(sum * terraces + 0.5) / terraces;
}

void main() {
    float spin = float(u_VertTime) * 0.002;
    float c = cos(spin);
    float s = sin(spin);
    mat3 rot = mat3(c, 0.0, -s, 0.0, 1.0, 0.0, s, 0.0, c);

    vec3 dir = normalize(vs_Pos.xyz);
    float e = elevation(dir);
    float seaLevel = u_ElevationParams[3];
    float land = max(e, seaLevel);
    vec3 displaced = rot * (dir * (1.0 + land * u_ElevationParams[2]));
    fs_Elev = e - seaLevel;

    mat3 invTranspose = mat3(u_ModelInvTr);
    fs_Nor = vec4(invTranspose * (rot * vec3(vs_Nor)), 0.0);

    vec4 modelposition = u_Model * vec4(displaced, 1.0);
    fs_Pos = modelposition;
    fs_LightVec = lightPos - modelposition;
    gl_Position = u_ViewProj * modelposition;
}
`

const noiseVisualizerVert = vertexPreamble + `
uniform int u_VertTime;
uniform int u_Octaves;
uniform vec2 u_Fractal;

out float fs_Noise;
` + noiseLib + `
void main() {
    float t = float(u_VertTime) * 0.005;
    float n = fbmPerlin(vs_Pos.xyz + vec3(t, 0.0, t), u_Octaves, u_Fractal);
    fs_Noise = n;
    vec4 displaced = vec4(vs_Pos.xyz + vs_Nor.xyz * (n - 0.5) * 0.3, 1.0);

    mat3 invTranspose = mat3(u_ModelInvTr);
    fs_Nor = vec4(invTranspose * vec3(vs_Nor), 0.0);

    vec4 modelposition = u_Model * displaced;
    fs_Pos = modelposition;
    fs_LightVec = lightPos - modelposition;
    gl_Position = u_ViewProj * modelposition;
}
`

// ────────────────────────────────── Fragment ───────────────────────────────────

const lambertFrag = fragmentPreamble + `
uniform vec4 u_Color;

void main() {
    vec4 diffuseColor = u_Color;
    float diffuseTerm = clamp(dot(normalize(fs_Nor), normalize(fs_LightVec)), 0.0, 1.0);
    float ambientTerm = 0.2;
    float lightIntensity = diffuseTerm + ambientTerm;
    out_Col = vec4(diffuseColor.rgb * lightIntensity, diffuseColor.a);
}
`

const normalViewerFrag = fragmentPreamble + `
void main() {
    out_Col = vec4(normalize(fs_Nor.xyz) * 0.5 + 0.5, 1.0);
}
`

const noisyColorHeader = fragmentPreamble + `
uniform vec4 u_Color;
uniform int u_FragTime;
uniform int u_Octaves;
uniform vec2 u_Fractal;
` + noiseLib + `
vec4 shade(float n) {
    float diffuseTerm = clamp(dot(normalize(fs_Nor), normalize(fs_LightVec)), 0.0, 1.0);
    float lightIntensity = diffuseTerm + 0.2;
    vec3 col = mix(u_Color.rgb * 0.2, u_Color.rgb, clamp(n, 0.0, 1.0));
    return vec4(col * lightIntensity, u_Color.a);
}
`

const fbmNoisyColorFrag = noisyColorHeader + `
void main() {
    float t = float(u_FragTime) * 0.005;
    out_Col = shade(fbmValue(fs_Pos.xyz + vec3(t), u_Octaves, u_Fractal));
}
`

const perlinNoisyColorFrag = noisyColorHeader + `
void main() {
    float t = float(u_FragTime) * 0.005;
    out_Col = shade(fbmPerlin(fs_Pos.xyz + vec3(0.0, t, 0.0), u_Octaves, u_Fractal));
}
`

const worleyNoisyColorFrag = noisyColorHeader + `
void main() {
    float t = float(u_FragTime) * 0.005;
    out_Col = shade(1.0 - fbmWorley(fs_Pos.xyz + vec3(t, 0.0, 0.0), u_Octaves, u_Fractal));
}
`

const planetFrag = fragmentPreamble + `
uniform vec3 u_CamPos;
uniform int u_FragTime;

in float fs_Elev;

void main() {
    vec3 n = normalize(fs_Nor.xyz);
    vec3 l = normalize(fs_LightVec.xyz);
    float diffuseTerm = clamp(dot(n, l), 0.0, 1.0);

    vec3 col;
    float specular = 0.0;
    if (fs_Elev <= 0.0) {
        float shimmer = 0.03 * sin(float(u_FragTime) * 0.05 + fs_Pos.x * 20.0);
        col = mix(vec3(0.02, 0.1, 0.35), vec3(0.1, 0.35, 0.6), clamp(1.0 + fs_Elev * 4.0, 0.0, 1.0)) + shimmer;
        vec3 v = normalize(u_CamPos - fs_Pos.xyz);
        vec3 h = normalize(v + l);
        specular = pow(max(dot(n, h), 0.0), 48.0);
    } else if (fs_Elev < 0.05) {
        col = vec3(0.76, 0.7, 0.5);
    } else if (fs_Elev < 0.3) {
        col = vec3(0.2, 0.5, 0.18);
    } else if (fs_Elev < 0.6) {
        col = vec3(0.42, 0.36, 0.3);
    } else {
        col = vec3(0.95, 0.95, 0.97);
    }

    out_Col = vec4(col * (diffuseTerm + 0.15) + vec3(specular), 1.0);
}
`

const noiseVisualizerFrag = fragmentPreamble + `
uniform int u_Octaves;
uniform vec2 u_Fractal;

in float fs_Noise;

void main() {
    float band = smoothstep(0.0, 0.04, abs(fract(fs_Noise * float(u_Octaves) * 2.0) - 0.5));
    vec3 ramp = mix(vec3(0.05, 0.0, 0.2), vec3(1.0, 0.85, 0.3), fs_Noise);
    out_Col = vec4(ramp * mix(0.6, 1.0, band) * (0.5 + 0.5 * u_Fractal.y), 1.0);
}
`

// moonFrag is paired with lambertVert for the secondary body of planet frames.
const moonFrag = fragmentPreamble + noiseLib + `
void main() {
    float craters = smoothstep(0.05, 0.35, worley(fs_Pos.xyz * 6.0));
    vec3 col = mix(vec3(0.35), vec3(0.75), craters);
    float diffuseTerm = clamp(dot(normalize(fs_Nor), normalize(fs_LightVec)), 0.0, 1.0);
    out_Col = vec4(col * (diffuseTerm + 0.1), 1.0);
}
`
